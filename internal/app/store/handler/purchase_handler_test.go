package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petstore/internal/app/store/entity"
	"petstore/internal/app/store/repository"
	"petstore/internal/app/store/repository/mocks"
	"petstore/internal/app/store/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPurchaseHandler() (*PurchaseHandler, *mocks.MockCartRepository, *mocks.MockPurchaseRepository, *mocks.MockStatsCache, *mocks.MockMessagePublisher) {
	cartRepo := new(mocks.MockCartRepository)
	purchaseRepo := new(mocks.MockPurchaseRepository)
	cache := new(mocks.MockStatsCache)
	producer := new(mocks.MockMessagePublisher)

	purchaseService := service.NewPurchaseService(cartRepo, purchaseRepo, cache, producer)
	h := NewPurchaseHandler(purchaseService)

	return h, cartRepo, purchaseRepo, cache, producer
}

func purchaseBody(clientID string) []byte {
	itemID := int64(1)
	quantity := 2
	body, _ := json.Marshal(entity.PurchaseRequest{
		ClientID: clientID,
		Cart: []entity.PurchaseLineRequest{
			{ItemID: &itemID, Quantity: &quantity},
		},
	})
	return body
}

func TestPurchaseHandler_Purchase_Success(t *testing.T) {
	// Arrange
	h, cartRepo, purchaseRepo, cache, producer := setupPurchaseHandler()

	purchase := &entity.Purchase{
		OrderID:    7,
		TotalPrice: 99.98,
		OrderDate:  time.Now(),
		ClientID:   testClientID,
	}

	cartRepo.On("CartExists", mock.Anything, testClientID).Return(true, nil)
	purchaseRepo.On("CreatePurchase", mock.Anything, testClientID, mock.Anything).Return(purchase, nil)
	cache.On("DeleteTopSales", mock.Anything).Return(nil)
	producer.On("PublishMessage", mock.Anything, testClientID, mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewBuffer(purchaseBody(testClientID)))
	c.Request.Header.Set("Content-Type", "application/json")

	// Act
	h.Purchase(c)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Purchase successful", response.Message)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), data["order_id"])
	assert.Equal(t, 99.98, data["total_price"])
}

func TestPurchaseHandler_Purchase_EmptyCart(t *testing.T) {
	// Пустой список cart отклоняется валидацией min=1
	h, _, _, _, _ := setupPurchaseHandler()

	body, _ := json.Marshal(entity.PurchaseRequest{
		ClientID: testClientID,
		Cart:     []entity.PurchaseLineRequest{},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Purchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseHandler_Purchase_CartNotFound(t *testing.T) {
	h, cartRepo, _, _, _ := setupPurchaseHandler()

	cartRepo.On("CartExists", mock.Anything, "ghost").Return(false, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewBuffer(purchaseBody("ghost")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Purchase(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response entity.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Errors, "Shopping cart not found for client: ghost")
}

func TestPurchaseHandler_Purchase_InsufficientStock(t *testing.T) {
	h, cartRepo, purchaseRepo, _, _ := setupPurchaseHandler()

	cartRepo.On("CartExists", mock.Anything, testClientID).Return(true, nil)
	purchaseRepo.On("CreatePurchase", mock.Anything, testClientID, mock.Anything).
		Return(nil, fmt.Errorf("%w: not enough stock for item 1: requested 2, available 1", repository.ErrInsufficientStock))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewBuffer(purchaseBody(testClientID)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Purchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response entity.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Errors, "not enough stock")
}

func TestPurchaseHandler_Purchase_ItemNotFound(t *testing.T) {
	h, cartRepo, purchaseRepo, _, _ := setupPurchaseHandler()

	cartRepo.On("CartExists", mock.Anything, testClientID).Return(true, nil)
	purchaseRepo.On("CreatePurchase", mock.Anything, testClientID, mock.Anything).
		Return(nil, fmt.Errorf("%w: item 42", repository.ErrItemNotFound))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewBuffer(purchaseBody(testClientID)))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Purchase(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPurchaseHandler_Purchase_InvalidJSON(t *testing.T) {
	h, _, _, _, _ := setupPurchaseHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewBufferString("not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Purchase(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
