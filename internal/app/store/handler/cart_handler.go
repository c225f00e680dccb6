package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"petstore/internal/app/store/entity"
	"petstore/internal/app/store/service"
)

// CartHandler обрабатывает HTTP запросы корзин
type CartHandler struct {
	cartService service.CartServiceInterface
	validator   *validator.Validate
}

// NewCartHandler создает новый обработчик корзин
func NewCartHandler(cartService service.CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// AddItem обрабатывает POST /cart/:clientId
func (h *CartHandler) AddItem(c *gin.Context) {
	clientID := c.Param("clientId")

	var req entity.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, `Request body must contain "item_id" and "quantity"`)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	err := h.cartService.AddItem(c.Request.Context(), clientID, *req.ItemID, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			respondError(c, http.StatusNotFound, "Cart not found")
		case errors.Is(err, service.ErrItemNotFound):
			respondError(c, http.StatusNotFound, "Item not found")
		case errors.Is(err, service.ErrDuplicateCartItem):
			respondError(c, http.StatusBadRequest, "Item is already in the cart")
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondMessage(c, http.StatusOK, "Item added to the shopping cart.")
}

// RemoveItem обрабатывает DELETE /carts/:clientId/items/:itemId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	clientID := c.Param("clientId")

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), clientID, itemID); err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			respondError(c, http.StatusNotFound, "Client or Item not found")
		case errors.Is(err, service.ErrCartItemNotFound):
			respondError(c, http.StatusBadRequest, "Item not found in the cart for the specified client")
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondMessage(c, http.StatusOK, "Item deleted from cart.")
}
