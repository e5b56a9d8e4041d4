package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elomAglan/Gestion-de-vente/internal/model"
	"github.com/elomAglan/Gestion-de-vente/pkg/logger"
	"github.com/elomAglan/Gestion-de-vente/prometheus"
)

// ProductRequest defines the structure for product creation requests
type ProductRequest struct {
	Name     string   `json:"nom"`
	Price    *float64 `json:"prix"`
	Quantity *int     `json:"quantite"`
	Unit     string   `json:"unite"`
}

// ProductHandler handles product CRUD operations
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler creates a product handler with its dependencies
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// ListProducts handles retrieving all products
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	var products []model.Product
	result := h.db.Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func (h *ProductHandler) GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var product model.Product
	result := h.db.First(&product, id)
	if result.Error != nil {
		log.Error("Product not found",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new product")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Name == "" || req.Price == nil || req.Quantity == nil || req.Unit == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "all fields are required"})
	}

	if *req.Price < 0 || *req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price and quantity must not be negative"})
	}

	// Check if a product with this name already exists. A unique index on
	// the name backs this check, so concurrent inserts cannot both slip
	// through; the pre-check only buys a friendly response.
	var count int64
	h.db.Model(&model.Product{}).Where("nom = ?", req.Name).Count(&count)
	if count > 0 {
		log.Warn("Product with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{"error": "product with this name already exists"})
	}

	product := model.Product{
		Name:     req.Name,
		Price:    *req.Price,
		Quantity: *req.Quantity,
		Unit:     req.Unit,
	}

	result := h.db.Create(&product)
	if result.Error != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
	}

	log.Info("Product created successfully",
		zap.String("product_id", strconv.FormatUint(uint64(product.ID), 10)),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// UpdateQuantity handles updating a product's on-hand quantity
func (h *ProductHandler) UpdateQuantity(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req struct {
		Quantity *int `json:"quantite"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if req.Quantity == nil || *req.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be zero or positive"})
	}

	prometheus.RecordStockOperation("quantity_update")

	result := h.db.Model(&model.Product{}).
		Where("id = ?", id).
		Update("quantite", *req.Quantity)
	if result.Error != nil {
		log.Error("Failed to update quantity",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update quantity"})
	}

	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	log.Info("Quantity updated successfully",
		zap.String("product_id", id),
		zap.Int("quantity", *req.Quantity))
	return c.JSON(http.StatusOK, echo.Map{"message": "quantity updated successfully"})
}

// DeleteProduct handles deleting a product by ID
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting product", zap.String("product_id", id))

	result := h.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
	}

	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted successfully"})
}
