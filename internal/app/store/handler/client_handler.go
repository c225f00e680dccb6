package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"petstore/internal/app/store/entity"
	"petstore/internal/app/store/service"
)

// ClientHandler обрабатывает HTTP запросы клиентов
type ClientHandler struct {
	clientService service.ClientServiceInterface
	validator     *validator.Validate
}

// NewClientHandler создает новый обработчик клиентов
func NewClientHandler(clientService service.ClientServiceInterface) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		validator:     validator.New(),
	}
}

// CreateClient обрабатывает POST /clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req entity.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusOK, "Client added successfully.", entity.CreatedClientResponse{
		ID:    client.ID,
		Name:  client.Name,
		Email: client.Email,
	})
}

// ListClients обрабатывает GET /clients с фильтрами по дате покупки
// и имени купленного товара
func (h *ClientHandler) ListClients(c *gin.Context) {
	purchaseDate := c.Query("last_purchase_date")
	itemBought := c.Query("item_bought")

	clients, err := h.clientService.ListClients(c.Request.Context(), purchaseDate, itemBought)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondError(c, http.StatusBadRequest, "last_purchase_date must be a date in YYYY-MM-DD format")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusOK, "Clients retrieved successfully.", clients)
}

// GetClientOrders обрабатывает GET /clients/:clientId/orders
func (h *ClientHandler) GetClientOrders(c *gin.Context) {
	clientID := c.Param("clientId")

	orders, err := h.clientService.GetClientOrders(c.Request.Context(), clientID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			respondError(c, http.StatusNotFound, "Client not found")
		case errors.Is(err, service.ErrNoOrdersFound):
			respondError(c, http.StatusNotFound, "Client has no orders")
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondData(c, http.StatusOK, "Client orders retrieved successfully.", orders)
}
