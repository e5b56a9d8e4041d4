package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elomAglan/Gestion-de-vente/internal/model"
	"github.com/elomAglan/Gestion-de-vente/pkg/logger"
	"github.com/elomAglan/Gestion-de-vente/prometheus"
)

// MovementRequest defines the structure for stock movement creation requests
type MovementRequest struct {
	ProductID uint   `json:"produit_id"`
	Type      string `json:"type_mouvement"`
	Quantity  int    `json:"quantite"`
	Supplier  string `json:"fournisseur"`
}

// MovementHandler handles the stock movement history
type MovementHandler struct {
	db *gorm.DB
}

// NewMovementHandler creates a movement handler with its dependencies
func NewMovementHandler(db *gorm.DB) *MovementHandler {
	return &MovementHandler{db: db}
}

// ListMovements handles retrieving the full movement history
func (h *MovementHandler) ListMovements(c echo.Context) error {
	log := logger.FromContext(c)

	var movements []model.StockMovement
	result := h.db.Order("date_mouvement DESC").Find(&movements)
	if result.Error != nil {
		log.Error("Failed to list movements", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve movements",
		})
	}

	return c.JSON(http.StatusOK, movements)
}

// CreateMovement records one inventory adjustment. The referenced product
// must exist at insert time; the on-hand quantity itself is not touched
// here.
func (h *MovementHandler) CreateMovement(c echo.Context) error {
	log := logger.FromContext(c)

	var req MovementRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "produit_id is required"})
	}
	if !model.ValidMovementType(req.Type) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movement type"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}

	// The product reference must exist at insert time
	var product model.Product
	if err := h.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Movement references unknown product", zap.Uint("product_id", req.ProductID))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		log.Error("Failed to look up product", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record movement"})
	}

	prometheus.RecordStockOperation("movement_create")

	movement := model.StockMovement{
		ProductID: req.ProductID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Date:      time.Now(),
		Supplier:  req.Supplier,
	}

	if result := h.db.Create(&movement); result.Error != nil {
		log.Error("Failed to record movement",
			zap.Uint("product_id", req.ProductID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record movement"})
	}

	log.Info("Movement recorded",
		zap.Uint("product_id", movement.ProductID),
		zap.String("type", movement.Type),
		zap.Int("quantity", movement.Quantity))
	return c.JSON(http.StatusCreated, movement)
}

// ClearMovements deletes the whole movement history
func (h *MovementHandler) ClearMovements(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Clearing movement history")

	prometheus.RecordStockOperation("movement_clear")

	if err := h.db.Where("1 = 1").Delete(&model.StockMovement{}).Error; err != nil {
		log.Error("Failed to clear movement history", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear movement history"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "movement history cleared successfully"})
}
