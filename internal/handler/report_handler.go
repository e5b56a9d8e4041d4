package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elomAglan/Gestion-de-vente/internal/model"
	"github.com/elomAglan/Gestion-de-vente/pkg/logger"
)

// ReportHandler serves the administrative dashboard summary
type ReportHandler struct {
	db *gorm.DB
}

// NewReportHandler creates a report handler with its dependencies
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

type lowStockProduct struct {
	Name     string `json:"nom"`
	Quantity int    `json:"quantite"`
}

type recentLogin struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"last_login"`
}

type productSales struct {
	Name      string `json:"nom"`
	TotalSold int    `json:"total_ventes"`
}

type dailySales struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// Summary aggregates the dashboard figures: stock coverage, today's
// sales, recent logins and best/worst sellers.
func (h *ReportHandler) Summary(c echo.Context) error {
	log := logger.FromContext(c)

	var inStock int64
	if err := h.db.Model(&model.Product{}).Where("quantite > 0").Count(&inStock).Error; err != nil {
		return h.summaryError(c, log, err)
	}

	var lowStock []lowStockProduct
	if err := h.db.Model(&model.Product{}).
		Select("nom AS name", "quantite AS quantity").
		Where("quantite < ?", 10).
		Scan(&lowStock).Error; err != nil {
		return h.summaryError(c, log, err)
	}

	var today dailySales
	if err := h.db.Raw(
		`SELECT COUNT(*) AS count, COALESCE(SUM(total), 0) AS total
		 FROM ventes WHERE date_vente::date = CURRENT_DATE`,
	).Scan(&today).Error; err != nil {
		return h.summaryError(c, log, err)
	}

	var lastLogins []recentLogin
	if err := h.db.Model(&model.User{}).
		Select("username", "email", "last_login").
		Where("last_login IS NOT NULL").
		Order("last_login DESC").
		Limit(2).
		Scan(&lastLogins).Error; err != nil {
		return h.summaryError(c, log, err)
	}

	topSellers, err := h.sellers("DESC")
	if err != nil {
		return h.summaryError(c, log, err)
	}

	leastSellers, err := h.sellers("ASC")
	if err != nil {
		return h.summaryError(c, log, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products_in_stock": inStock,
		"low_stock":         lowStock,
		"sales_today":       today,
		"recent_logins":     lastLogins,
		"top_sellers":       topSellers,
		"least_sellers":     leastSellers,
	})
}

func (h *ReportHandler) sellers(direction string) ([]productSales, error) {
	var rows []productSales
	err := h.db.Table("ventes").
		Select("produits.nom AS name", "SUM(ventes.quantite) AS total_sold").
		Joins("JOIN produits ON ventes.produit_id = produits.id").
		Group("produits.nom").
		Order("total_sold " + direction).
		Limit(5).
		Scan(&rows).Error
	return rows, err
}

func (h *ReportHandler) summaryError(c echo.Context, log *zap.Logger, err error) error {
	log.Error("Failed to build summary", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve summary data"})
}
