package sale

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/elomAglan/Gestion-de-vente/internal/model"
)

// LineItem is one product + quantity + computed total within a batch
type LineItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantite"`
	LineTotal float64 `json:"prix_total"`
}

// Processor records multi-item sales. A batch is applied as a single
// atomic unit: every line item decrements its product's stock and inserts
// a sale row, or nothing from the batch persists at all. The processor
// keeps no state between calls.
type Processor struct {
	store Store
	log   *zap.Logger
}

// NewProcessor creates a sale processor over the given store
func NewProcessor(store Store, log *zap.Logger) *Processor {
	return &Processor{store: store, log: log}
}

// Process applies the batch. Line items are handled in input order inside
// one transaction. It returns ErrEmptyBatch, *ProductNotFoundError or
// *InsufficientStockError on validation and business-rule failures, and
// the underlying store error otherwise. No retry is attempted.
func (p *Processor) Process(ctx context.Context, items []LineItem) error {
	if len(items) == 0 {
		return ErrEmptyBatch
	}

	err := p.store.InTransaction(ctx, func(tx Tx) error {
		for _, item := range items {
			product, err := tx.ProductForUpdate(item.ProductID)
			if errors.Is(err, ErrProductMissing) {
				return &ProductNotFoundError{ProductID: item.ProductID}
			}
			if err != nil {
				return err
			}

			if product.Quantity < item.Quantity {
				return &InsufficientStockError{ProductName: product.Name}
			}

			if err := tx.DecrementStock(item.ProductID, item.Quantity); err != nil {
				return err
			}

			if err := tx.RecordSale(&model.Sale{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Total:     item.LineTotal,
				Date:      time.Now(),
			}); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		p.log.Warn("sale batch rejected",
			zap.Int("items", len(items)),
			zap.Error(err))
		return err
	}

	p.log.Info("sale batch recorded", zap.Int("items", len(items)))
	return nil
}
