package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
)

type fakeSource struct {
	products []models.Product
	bills    []models.Bill
}

func (f *fakeSource) ListProducts() []models.Product { return f.products }
func (f *fakeSource) ListBills() []models.Bill       { return f.bills }

type fakeArchive struct {
	saved []models.SalesReport
}

func (f *fakeArchive) SaveSalesReport(_ context.Context, report models.SalesReport) error {
	f.saved = append(f.saved, report)
	return nil
}

type fakeExporter struct {
	rows []models.Bill
}

func (f *fakeExporter) AppendBill(_ context.Context, bill models.Bill) error {
	f.rows = append(f.rows, bill)
	return nil
}

func (f *fakeExporter) ExportedRowCount(_ context.Context) (int, error) {
	return len(f.rows), nil
}

func bill(id int64, name string, qty int, total string) models.Bill {
	return models.Bill{ID: id, ProductName: name, Quantity: qty, TotalPrice: decimal.RequireFromString(total)}
}

func TestBuildReportAggregates(t *testing.T) {
	svc := NewService(&fakeSource{}, nil, nil, nil)

	bills := []models.Bill{
		bill(1, "Widget", 4, "10.00"),
		bill(2, "Gizmo", 1, "5.25"),
		bill(3, "Widget", 2, "5.00"),
	}
	report := svc.BuildReport(bills, time.Time{}, time.Now())

	assert.Equal(t, 3, report.BillCount)
	assert.Equal(t, 7, report.UnitsSold)
	assert.True(t, report.GrossRevenue.Equal(decimal.RequireFromString("20.25")), "revenue was %s", report.GrossRevenue)
	assert.Equal(t, "Widget", report.TopProduct)
}

func TestBuildReportEmptyLedger(t *testing.T) {
	svc := NewService(&fakeSource{}, nil, nil, nil)

	report := svc.BuildReport(nil, time.Time{}, time.Now())
	assert.Equal(t, 0, report.BillCount)
	assert.True(t, report.GrossRevenue.Equal(decimal.Zero))
	assert.Empty(t, report.TopProduct)

	assert.Equal(t, "Sales summary: no bills in this period.", svc.FormatSummary(report))
}

func TestCloseOfDayOnlyCountsFreshBills(t *testing.T) {
	source := &fakeSource{bills: []models.Bill{bill(1, "Widget", 4, "10.00")}}
	archive := &fakeArchive{}
	svc := NewService(source, archive, nil, nil)
	ctx := context.Background()

	first, err := svc.CloseOfDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.BillCount)

	// Nothing new since the last close.
	second, err := svc.CloseOfDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.BillCount)

	source.bills = append(source.bills, bill(2, "Gizmo", 1, "5.25"))
	third, err := svc.CloseOfDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, third.BillCount)
	assert.True(t, third.GrossRevenue.Equal(decimal.RequireFromString("5.25")))

	require.Len(t, archive.saved, 3)
}

func TestCloseOfDayExportsWithoutDuplicates(t *testing.T) {
	source := &fakeSource{bills: []models.Bill{
		bill(1, "Widget", 4, "10.00"),
		bill(2, "Gizmo", 1, "5.25"),
	}}
	exporter := &fakeExporter{rows: []models.Bill{bill(1, "Widget", 4, "10.00")}}
	svc := NewService(source, nil, exporter, nil)

	_, err := svc.CloseOfDay(context.Background())
	require.NoError(t, err)

	// Bill 1 was already in the sheet; only bill 2 is appended.
	require.Len(t, exporter.rows, 2)
	assert.Equal(t, int64(2), exporter.rows[1].ID)
}

func TestLowStock(t *testing.T) {
	source := &fakeSource{products: []models.Product{
		{ID: 1, Name: "Plenty", Quantity: 50, Price: decimal.NewFromInt(1)},
		{ID: 2, Name: "Scarce", Quantity: 3, Price: decimal.NewFromInt(1)},
		{ID: 3, Name: "Out", Quantity: 0, Price: decimal.NewFromInt(1)},
	}}
	svc := NewService(source, nil, nil, nil)

	low := svc.LowStock(5)
	require.Len(t, low, 2)
	assert.Equal(t, "Scarce", low[0].Name)
	assert.Equal(t, "Out", low[1].Name)

	assert.Empty(t, svc.LowStock(-1))
}

func TestFormatSummary(t *testing.T) {
	svc := NewService(&fakeSource{}, nil, nil, nil)

	report := svc.BuildReport([]models.Bill{
		bill(1, "Widget", 4, "10.00"),
		bill(2, "Widget", 1, "2.50"),
	}, time.Time{}, time.Now())

	assert.Equal(t, "Sales summary: 2 bills, 5 units sold, revenue 12.50. Top product: Widget.", svc.FormatSummary(report))
}
