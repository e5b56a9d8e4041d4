package model

import (
	"time"
)

// Sale represents one sold line item. Rows are only ever created by the
// sale transaction processor and never updated afterwards.
type Sale struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"produit_id" gorm:"column:produit_id;index;not null"`
	Quantity  int       `json:"quantite" gorm:"column:quantite;not null"`
	Total     float64   `json:"total" gorm:"column:total;not null"`
	Date      time.Time `json:"date_vente" gorm:"column:date_vente;not null"`
}

// TableName keeps the table name used by the existing schema
func (Sale) TableName() string {
	return "ventes"
}
