package sale

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/elomAglan/Gestion-de-vente/internal/model"
)

// MockTx implements Tx for tests
type MockTx struct {
	mock.Mock
}

func (m *MockTx) ProductForUpdate(productID uint) (*model.Product, error) {
	args := m.Called(productID)
	product, _ := args.Get(0).(*model.Product)
	return product, args.Error(1)
}

func (m *MockTx) DecrementStock(productID uint, quantity int) error {
	args := m.Called(productID, quantity)
	return args.Error(0)
}

func (m *MockTx) RecordSale(s *model.Sale) error {
	args := m.Called(s)
	return args.Error(0)
}

// fakeStore runs the callback against a MockTx and mimics the commit /
// rollback outcome of a real transaction: any error from the callback
// means nothing was persisted.
type fakeStore struct {
	tx        *MockTx
	beginErr  error
	committed bool
	rolledBck bool
}

func (s *fakeStore) InTransaction(ctx context.Context, fn func(tx Tx) error) error {
	if s.beginErr != nil {
		return s.beginErr
	}
	if err := fn(s.tx); err != nil {
		s.rolledBck = true
		return err
	}
	s.committed = true
	return nil
}

func newTestProcessor(store Store) *Processor {
	return NewProcessor(store, zap.NewNop())
}

func TestProcess_EmptyBatch(t *testing.T) {
	// Arrange
	tx := new(MockTx)
	store := &fakeStore{tx: tx}
	processor := newTestProcessor(store)

	// Act
	err := processor.Process(context.Background(), nil)

	// Assert
	assert.ErrorIs(t, err, ErrEmptyBatch)
	assert.False(t, store.committed)
	assert.False(t, store.rolledBck)
	tx.AssertNotCalled(t, "ProductForUpdate", mock.Anything)
	tx.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "RecordSale", mock.Anything)
}

func TestProcess_SingleItemSuccess(t *testing.T) {
	// Arrange
	tx := new(MockTx)
	store := &fakeStore{tx: tx}
	processor := newTestProcessor(store)

	product := &model.Product{ID: 1, Name: "Produit X", Quantity: 5}
	tx.On("ProductForUpdate", uint(1)).Return(product, nil)
	tx.On("DecrementStock", uint(1), 3).Return(nil)
	tx.On("RecordSale", mock.MatchedBy(func(s *model.Sale) bool {
		return s.ProductID == 1 && s.Quantity == 3 && s.Total == 30 && !s.Date.IsZero()
	})).Return(nil)

	// Act
	err := processor.Process(context.Background(), []LineItem{
		{ProductID: 1, Quantity: 3, LineTotal: 30},
	})

	// Assert
	assert.NoError(t, err)
	assert.True(t, store.committed)
	tx.AssertExpectations(t)
}

func TestProcess_InsufficientStock(t *testing.T) {
	// Arrange
	tx := new(MockTx)
	store := &fakeStore{tx: tx}
	processor := newTestProcessor(store)

	product := &model.Product{ID: 1, Name: "Produit X", Quantity: 5}
	tx.On("ProductForUpdate", uint(1)).Return(product, nil)

	// Act
	err := processor.Process(context.Background(), []LineItem{
		{ProductID: 1, Quantity: 10, LineTotal: 100},
	})

	// Assert
	var noStock *InsufficientStockError
	assert.ErrorAs(t, err, &noStock)
	assert.Equal(t, "Produit X", noStock.ProductName)
	assert.True(t, store.rolledBck)
	assert.False(t, store.committed)
	tx.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "RecordSale", mock.Anything)
}

func TestProcess_InsufficientStockIsRepeatable(t *testing.T) {
	// Submitting the same over-quantity batch twice fails identically both
	// times, with no writes either time.
	items := []LineItem{{ProductID: 1, Quantity: 10, LineTotal: 100}}

	for i := 0; i < 2; i++ {
		tx := new(MockTx)
		store := &fakeStore{tx: tx}
		processor := newTestProcessor(store)
		tx.On("ProductForUpdate", uint(1)).
			Return(&model.Product{ID: 1, Name: "Produit X", Quantity: 5}, nil)

		err := processor.Process(context.Background(), items)

		var noStock *InsufficientStockError
		assert.ErrorAs(t, err, &noStock)
		assert.False(t, store.committed)
		tx.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything)
	}
}

func TestProcess_SecondItemUnknownAbortsBatch(t *testing.T) {
	// Arrange: first item is valid and gets applied inside the transaction,
	// then the second item references an unknown product. The whole batch
	// must roll back.
	tx := new(MockTx)
	store := &fakeStore{tx: tx}
	processor := newTestProcessor(store)

	first := &model.Product{ID: 1, Name: "Produit X", Quantity: 5}
	tx.On("ProductForUpdate", uint(1)).Return(first, nil)
	tx.On("DecrementStock", uint(1), 2).Return(nil)
	tx.On("RecordSale", mock.Anything).Return(nil)
	tx.On("ProductForUpdate", uint(999)).Return(nil, ErrProductMissing)

	// Act
	err := processor.Process(context.Background(), []LineItem{
		{ProductID: 1, Quantity: 2, LineTotal: 20},
		{ProductID: 999, Quantity: 1, LineTotal: 10},
	})

	// Assert
	var notFound *ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, uint(999), notFound.ProductID)
	assert.True(t, store.rolledBck)
	assert.False(t, store.committed)
	tx.AssertExpectations(t)
}

func TestProcess_ItemsAppliedInInputOrder(t *testing.T) {
	// Arrange
	tx := new(MockTx)
	store := &fakeStore{tx: tx}
	processor := newTestProcessor(store)

	var order []uint
	for _, id := range []uint{3, 1, 2} {
		id := id
		tx.On("ProductForUpdate", id).
			Run(func(args mock.Arguments) { order = append(order, id) }).
			Return(&model.Product{ID: id, Name: "P", Quantity: 100}, nil)
	}
	tx.On("DecrementStock", mock.Anything, mock.Anything).Return(nil)
	tx.On("RecordSale", mock.Anything).Return(nil)

	// Act
	err := processor.Process(context.Background(), []LineItem{
		{ProductID: 3, Quantity: 1, LineTotal: 1},
		{ProductID: 1, Quantity: 1, LineTotal: 1},
		{ProductID: 2, Quantity: 1, LineTotal: 1},
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 2}, order)
}

func TestProcess_StoreFailurePropagates(t *testing.T) {
	// Arrange
	storeErr := errors.New("connection refused")
	store := &fakeStore{tx: new(MockTx), beginErr: storeErr}
	processor := newTestProcessor(store)

	// Act
	err := processor.Process(context.Background(), []LineItem{
		{ProductID: 1, Quantity: 1, LineTotal: 10},
	})

	// Assert
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, IsBusinessError(err))
}

func TestProcess_DecrementFailureRollsBack(t *testing.T) {
	// Arrange
	tx := new(MockTx)
	store := &fakeStore{tx: tx}
	processor := newTestProcessor(store)

	writeErr := errors.New("write failed")
	tx.On("ProductForUpdate", uint(1)).
		Return(&model.Product{ID: 1, Name: "Produit X", Quantity: 5}, nil)
	tx.On("DecrementStock", uint(1), 1).Return(writeErr)

	// Act
	err := processor.Process(context.Background(), []LineItem{
		{ProductID: 1, Quantity: 1, LineTotal: 10},
	})

	// Assert
	assert.ErrorIs(t, err, writeErr)
	assert.True(t, store.rolledBck)
	tx.AssertNotCalled(t, "RecordSale", mock.Anything)
}

func TestIsBusinessError(t *testing.T) {
	assert.True(t, IsBusinessError(ErrEmptyBatch))
	assert.True(t, IsBusinessError(&ProductNotFoundError{ProductID: 4}))
	assert.True(t, IsBusinessError(&InsufficientStockError{ProductName: "X"}))
	assert.False(t, IsBusinessError(errors.New("dial tcp: timeout")))
	assert.False(t, IsBusinessError(nil))
}
