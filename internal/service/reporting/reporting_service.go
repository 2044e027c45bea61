package reporting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/repository/mongodb"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/repository/sheets"
)

// EngineSource provides the read-only snapshots reporting works from. The
// inventory manager satisfies it.
type EngineSource interface {
	ListProducts() []models.Product
	ListBills() []models.Bill
}

// Service aggregates the bill ledger into sales reports. The MongoDB archive
// and the Google Sheets exporter are optional collaborators; when they are
// absent (nil) reporting still works, it just keeps no history outside the
// engine's own files.
type Service struct {
	source   EngineSource
	archive  mongodb.Archive
	exporter sheets.Exporter
	logger   *zap.Logger
	now      func() time.Time

	mu             sync.Mutex
	lastClosedBill int64
}

// NewService wires a new reporting service instance.
func NewService(source EngineSource, archive mongodb.Archive, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:   source,
		archive:  archive,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// BuildReport aggregates a sequence of bills into a SalesReport covering the
// given period.
func (s *Service) BuildReport(bills []models.Bill, start, end time.Time) models.SalesReport {
	report := models.SalesReport{
		PeriodStart:  start,
		PeriodEnd:    end,
		GrossRevenue: decimal.Zero,
		CreatedAt:    s.now().UTC(),
	}

	unitsByProduct := make(map[string]int)
	for _, b := range bills {
		report.BillCount++
		report.UnitsSold += b.Quantity
		report.GrossRevenue = report.GrossRevenue.Add(b.TotalPrice)
		unitsByProduct[b.ProductName] += b.Quantity
	}

	top := 0
	for name, units := range unitsByProduct {
		if units > top || (units == top && name < report.TopProduct) {
			top = units
			report.TopProduct = name
		}
	}

	return report
}

// OverallReport aggregates the entire ledger as it stands right now.
func (s *Service) OverallReport() models.SalesReport {
	now := s.now().UTC()
	return s.BuildReport(s.source.ListBills(), time.Time{}, now)
}

// CloseOfDay aggregates the bills written since the previous close, archives
// the report and exports the new bills. Archive and export failures are
// logged and do not fail the close: they are downstream consumers, not part
// of the engine's persistence contract.
func (s *Service) CloseOfDay(ctx context.Context) (models.SalesReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills := s.source.ListBills()
	var fresh []models.Bill
	for _, b := range bills {
		if b.ID > s.lastClosedBill {
			fresh = append(fresh, b)
		}
	}

	now := s.now().UTC()
	report := s.BuildReport(fresh, now.Add(-24*time.Hour), now)

	if s.archive != nil {
		if err := s.archive.SaveSalesReport(ctx, report); err != nil {
			s.logger.Error("failed to archive sales report", zap.Error(err))
		}
	}

	if s.exporter != nil {
		s.exportBills(ctx, fresh)
	}

	if n := len(fresh); n > 0 {
		s.lastClosedBill = fresh[n-1].ID
	}

	s.logger.Info("close of day complete",
		zap.Int("bills", report.BillCount),
		zap.Int("units", report.UnitsSold),
		zap.String("revenue", report.GrossRevenue.String()))
	return report, nil
}

// LowStock returns the products at or below the given stock threshold, in
// inventory order.
func (s *Service) LowStock(threshold int) []models.Product {
	var low []models.Product
	for _, p := range s.source.ListProducts() {
		if p.Quantity <= threshold {
			low = append(low, p)
		}
	}
	return low
}

// FormatSummary renders a report as a short human-readable message.
func (s *Service) FormatSummary(report models.SalesReport) string {
	if report.BillCount == 0 {
		return "Sales summary: no bills in this period."
	}
	msg := fmt.Sprintf("Sales summary: %d bills, %d units sold, revenue %s.",
		report.BillCount, report.UnitsSold, report.GrossRevenue.StringFixed(2))
	if report.TopProduct != "" {
		msg += fmt.Sprintf(" Top product: %s.", report.TopProduct)
	}
	return msg
}

func (s *Service) exportBills(ctx context.Context, fresh []models.Bill) {
	// Resume from the sheet's own row count so restarts do not duplicate rows.
	exported, err := s.exporter.ExportedRowCount(ctx)
	if err != nil {
		s.logger.Error("failed to read exported bill count", zap.Error(err))
		return
	}

	for _, b := range fresh {
		if b.ID <= int64(exported) {
			continue
		}
		if err := s.exporter.AppendBill(ctx, b); err != nil {
			s.logger.Error("failed to export bill", zap.Int64("bill_id", b.ID), zap.Error(err))
			return
		}
	}
}
