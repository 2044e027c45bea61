package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ANI-CPU-tech/STOCK-MATE/internal/domain/models"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/service/inventory"
	"github.com/ANI-CPU-tech/STOCK-MATE/internal/service/reporting"
)

// InventoryHandler exposes the inventory engine over HTTP. It holds no
// business rules: it binds primitives, calls the manager and renders the
// manager's return values.
type InventoryHandler struct {
	manager   *inventory.Manager
	reporting *reporting.Service
	logger    *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(manager *inventory.Manager, reportingSvc *reporting.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{manager: manager, reporting: reportingSvc, logger: logger}
}

type addProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type createBillRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// ListProducts renders the inventory snapshot in insertion order.
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.ListProducts())
}

// AddProduct creates a new product line.
func (h *InventoryHandler) AddProduct(c *gin.Context) {
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add product payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.manager.AddProduct(c.Request.Context(), req.Name, req.Quantity, req.Price)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// RemoveProduct removes a product line by id. Absent ids succeed silently.
func (h *InventoryHandler) RemoveProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.manager.RemoveProduct(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBills renders the full ledger, oldest first.
func (h *InventoryHandler) ListBills(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.ListBills())
}

// CreateBill sells stock and returns the created bill.
func (h *InventoryHandler) CreateBill(c *gin.Context) {
	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create bill payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bill, err := h.manager.CreateBill(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

// SalesReport renders the sales aggregate over the whole ledger.
func (h *InventoryHandler) SalesReport(c *gin.Context) {
	report := h.reporting.OverallReport()
	c.JSON(http.StatusOK, gin.H{
		"report":  report,
		"summary": h.reporting.FormatSummary(report),
	})
}

func (h *InventoryHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrCorruptData):
		h.logger.Error("persisted state corrupt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored data is corrupt"})
	case errors.Is(err, models.ErrStorage):
		h.logger.Error("storage failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "storage unavailable, nothing was changed"})
	default:
		h.logger.Error("unexpected failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
