package model

import (
	"time"
)

// Movement types: inbound restock or outbound adjustment
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// ValidMovementType reports whether the given movement type is known
func ValidMovementType(movementType string) bool {
	return movementType == MovementIn || movementType == MovementOut
}

// StockMovement represents one recorded inventory adjustment, independent
// of sales. Rows are immutable once created; history is bulk-deletable.
type StockMovement struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"produit_id" gorm:"column:produit_id;index;not null"`
	Type      string    `json:"type_mouvement" gorm:"column:type_mouvement;type:varchar(10);not null"`
	Quantity  int       `json:"quantite" gorm:"column:quantite;not null"`
	Date      time.Time `json:"date_mouvement" gorm:"column:date_mouvement;not null"`
	Supplier  string    `json:"fournisseur" gorm:"column:fournisseur;type:varchar(255)"`
}

// TableName keeps the table name used by the existing schema
func (StockMovement) TableName() string {
	return "stock"
}
