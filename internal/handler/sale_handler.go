package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elomAglan/Gestion-de-vente/internal/sale"
	"github.com/elomAglan/Gestion-de-vente/pkg/logger"
	"github.com/elomAglan/Gestion-de-vente/prometheus"
)

// BatchProcessor records a multi-item sale as one atomic unit
type BatchProcessor interface {
	Process(ctx context.Context, items []sale.LineItem) error
}

// SaleRequest is the body of a multi-item sale submission
type SaleRequest struct {
	Sales []sale.LineItem `json:"sales"`
}

// saleRow is the listing shape joined with the product name
type saleRow struct {
	ID       uint      `json:"id"`
	Product  string    `json:"produit"`
	Quantity int       `json:"quantite"`
	Total    float64   `json:"total"`
	Date     time.Time `json:"date_vente"`
}

// SaleHandler handles sale listing and multi-item sale submission
type SaleHandler struct {
	db        *gorm.DB
	processor BatchProcessor
}

// NewSaleHandler creates a sale handler with its dependencies
func NewSaleHandler(db *gorm.DB, processor BatchProcessor) *SaleHandler {
	return &SaleHandler{db: db, processor: processor}
}

// ListSales retrieves all sales joined with product names, newest first
func (h *SaleHandler) ListSales(c echo.Context) error {
	log := logger.FromContext(c)

	var sales []saleRow
	result := h.db.Table("ventes").
		Select("ventes.id", "produits.nom AS product", "ventes.quantite AS quantity", "ventes.total", "ventes.date_vente AS date").
		Joins("JOIN produits ON ventes.produit_id = produits.id").
		Order("ventes.date_vente DESC").
		Scan(&sales)
	if result.Error != nil {
		log.Error("Failed to list sales", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve sales",
		})
	}

	return c.JSON(http.StatusOK, sales)
}

// CreateSales applies a multi-item sale batch. Either every line item is
// recorded and every stock level decremented, or nothing persists and the
// failure reason is returned.
func (h *SaleHandler) CreateSales(c echo.Context) error {
	log := logger.FromContext(c)

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		prometheus.RecordSaleError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	for _, item := range req.Sales {
		if item.ProductID == 0 || item.Quantity <= 0 {
			prometheus.RecordSaleError("invalid_line_item")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "each line item needs a product and a positive quantity"})
		}
	}

	defer prometheus.TrackDBOperation("transaction")(time.Now())
	err := h.processor.Process(c.Request().Context(), req.Sales)
	if err != nil {
		if errors.Is(err, sale.ErrEmptyBatch) {
			prometheus.RecordSaleError("empty_batch")
			prometheus.RecordSaleBatch("rejected")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no sales to record"})
		}
		if sale.IsBusinessError(err) {
			var notFound *sale.ProductNotFoundError
			if errors.As(err, &notFound) {
				prometheus.RecordSaleError("product_not_found")
			} else {
				prometheus.RecordSaleError("insufficient_stock")
			}
			prometheus.RecordSaleBatch("rejected")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		log.Error("Sale batch failed on the store", zap.Error(err))
		prometheus.RecordSaleError("store_error")
		prometheus.RecordSaleBatch("failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record sales"})
	}

	prometheus.RecordSaleBatch("committed")
	log.Info("Sale batch recorded", zap.Int("items", len(req.Sales)))
	return c.JSON(http.StatusOK, echo.Map{"message": "sales recorded successfully"})
}
