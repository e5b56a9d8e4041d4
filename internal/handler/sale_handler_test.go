package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/elomAglan/Gestion-de-vente/internal/sale"
)

// MockProcessor implements BatchProcessor for tests
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) Process(ctx context.Context, items []sale.LineItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func postSales(t *testing.T, h *SaleHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h.CreateSales(c))
	return rec
}

func TestCreateSales_Success(t *testing.T) {
	// Arrange
	processor := new(MockProcessor)
	processor.On("Process", mock.Anything, []sale.LineItem{
		{ProductID: 1, Quantity: 3, LineTotal: 30},
	}).Return(nil)
	h := NewSaleHandler(nil, processor)

	// Act
	rec := postSales(t, h, `{"sales":[{"product_id":1,"quantite":3,"prix_total":30}]}`)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sales recorded successfully")
	processor.AssertExpectations(t)
}

func TestCreateSales_EmptyBatch(t *testing.T) {
	// Arrange
	processor := new(MockProcessor)
	processor.On("Process", mock.Anything, mock.Anything).Return(sale.ErrEmptyBatch)
	h := NewSaleHandler(nil, processor)

	// Act
	rec := postSales(t, h, `{"sales":[]}`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no sales to record")
}

func TestCreateSales_InsufficientStock(t *testing.T) {
	// Arrange
	processor := new(MockProcessor)
	processor.On("Process", mock.Anything, mock.Anything).
		Return(&sale.InsufficientStockError{ProductName: "Produit X"})
	h := NewSaleHandler(nil, processor)

	// Act
	rec := postSales(t, h, `{"sales":[{"product_id":1,"quantite":10,"prix_total":100}]}`)

	// Assert: the response names the product that lacked stock
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient stock for product Produit X")
}

func TestCreateSales_ProductNotFound(t *testing.T) {
	// Arrange
	processor := new(MockProcessor)
	processor.On("Process", mock.Anything, mock.Anything).
		Return(&sale.ProductNotFoundError{ProductID: 999})
	h := NewSaleHandler(nil, processor)

	// Act
	rec := postSales(t, h, `{"sales":[{"product_id":999,"quantite":1,"prix_total":10}]}`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "product with ID 999 not found")
}

func TestCreateSales_StoreFailure(t *testing.T) {
	// Arrange
	processor := new(MockProcessor)
	processor.On("Process", mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))
	h := NewSaleHandler(nil, processor)

	// Act
	rec := postSales(t, h, `{"sales":[{"product_id":1,"quantite":1,"prix_total":10}]}`)

	// Assert: infrastructure failures surface as a generic server error
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to record sales")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestCreateSales_MalformedLineItem(t *testing.T) {
	// Arrange: a zero quantity never reaches the processor
	processor := new(MockProcessor)
	h := NewSaleHandler(nil, processor)

	// Act
	rec := postSales(t, h, `{"sales":[{"product_id":1,"quantite":0,"prix_total":0}]}`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}
