package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"petstore/internal/app/store/entity"
	"petstore/internal/app/store/service"
)

// PurchaseHandler обрабатывает оформление покупок
type PurchaseHandler struct {
	purchaseService service.PurchaseServiceInterface
	validator       *validator.Validate
}

// NewPurchaseHandler создает новый обработчик покупок
func NewPurchaseHandler(purchaseService service.PurchaseServiceInterface) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		validator:       validator.New(),
	}
}

// Purchase обрабатывает POST /purchase
// Покупка выполняется атомарно: нехватка остатка по любой строке
// откатывает всю транзакцию без частичных списаний
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var req entity.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	purchase, err := h.purchaseService.Purchase(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			respondError(c, http.StatusNotFound, "Shopping cart not found for client: "+req.ClientID)
		case errors.Is(err, service.ErrItemNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInsufficientStock):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondData(c, http.StatusOK, "Purchase successful", entity.PurchaseResponse{
		OrderID:    purchase.OrderID,
		TotalPrice: purchase.TotalPrice,
	})
}
