package model

import (
	"time"
)

// Sale units for a product
const (
	UnitPiece  = "Unité"
	UnitCarton = "Carton"
)

// Product represents an inventory product. Column names follow the
// existing `produits` schema consumed by the dashboard.
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"nom" gorm:"column:nom;type:varchar(255);uniqueIndex;not null"`
	Price     float64   `json:"prix" gorm:"column:prix;not null"`
	Quantity  int       `json:"quantite" gorm:"column:quantite;not null;default:0"`
	Unit      string    `json:"unite" gorm:"column:unite;type:varchar(50);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table name used by the existing schema
func (Product) TableName() string {
	return "produits"
}
