package sale

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elomAglan/Gestion-de-vente/internal/model"
)

// Store opens the atomic unit the processor works in. The callback either
// returns nil and the transaction commits, or returns an error and every
// write made through the Tx is rolled back.
type Store interface {
	InTransaction(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes the store operations available inside one transaction.
type Tx interface {
	// ProductForUpdate fetches a product row and holds a row lock on it
	// until the transaction ends, so concurrent batches against the same
	// product serialize on the store.
	ProductForUpdate(productID uint) (*model.Product, error)

	// DecrementStock lowers the on-hand quantity of a product. The write
	// is only visible outside the transaction after commit.
	DecrementStock(productID uint, quantity int) error

	// RecordSale inserts one sale row.
	RecordSale(s *model.Sale) error
}

// ErrProductMissing is how Tx implementations signal an absent product row
var ErrProductMissing = errors.New("product row not found")

// gormStore implements Store on top of a gorm handle
type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm handle into the processor's Store
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) InTransaction(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
}

type gormTx struct {
	tx *gorm.DB
}

func (t *gormTx) ProductForUpdate(productID uint) (*model.Product, error) {
	var product model.Product
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductMissing
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (t *gormTx) DecrementStock(productID uint, quantity int) error {
	return t.tx.Model(&model.Product{}).
		Where("id = ?", productID).
		Update("quantite", gorm.Expr("quantite - ?", quantity)).Error
}

func (t *gormTx) RecordSale(s *model.Sale) error {
	return t.tx.Create(s).Error
}
