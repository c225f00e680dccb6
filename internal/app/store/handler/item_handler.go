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

// ItemHandler обрабатывает HTTP запросы каталога товаров
type ItemHandler struct {
	catalogService service.CatalogServiceInterface
	validator      *validator.Validate
}

// NewItemHandler создает новый обработчик каталога
func NewItemHandler(catalogService service.CatalogServiceInterface) *ItemHandler {
	return &ItemHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// CreateItem обрабатывает POST /items
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req entity.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusBadRequest, "Category does not exist")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusOK, "Item created successfully.", item)
}

// UpdateItem обрабатывает PUT /items/:id
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	var req entity.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	updated, err := h.catalogService.UpdateItem(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			respondError(c, http.StatusNotFound, "Item not found")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusBadRequest, "Category does not exist")
		case errors.Is(err, service.ErrNoFieldsToUpdate):
			respondError(c, http.StatusBadRequest, "No valid parameters provided for update")
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondData(c, http.StatusOK, "Item updated successfully.", updated)
}

// GetItem обрабатывает GET /items/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.catalogService.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			respondError(c, http.StatusNotFound, "Item not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusOK, "Item details retrieved successfully.", item)
}

// ListItems обрабатывает GET /items с пагинацией, фильтром и сортировкой
func (h *ItemHandler) ListItems(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Page must be an integer")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Limit must be an integer")
		return
	}

	filter := entity.ItemFilter{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}

	items, err := h.catalogService.ListItems(c.Request.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPagination):
			respondError(c, http.StatusBadRequest, "Page and limit parameters must be positive integers")
		case errors.Is(err, service.ErrInvalidSort):
			respondError(c, http.StatusBadRequest, `The specified sorting option is not valid. Use "name" or "price"`)
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusBadRequest, "The specified category does not exist")
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondData(c, http.StatusOK, "Items retrieved successfully.", items)
}

// SearchItems обрабатывает GET /items/search/:text
// Пустой результат поиска возвращает 404 - контракт API зафиксирован
func (h *ItemHandler) SearchItems(c *gin.Context) {
	items, err := h.catalogService.SearchItems(c.Request.Context(), c.Param("text"))
	if err != nil {
		if errors.Is(err, service.ErrNoItemsFound) {
			respondError(c, http.StatusNotFound, "No items found for the given search criteria")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusOK, "Items retrieved successfully.", items)
}

// GetTopSales обрабатывает GET /stats/sales
func (h *ItemHandler) GetTopSales(c *gin.Context) {
	report, err := h.catalogService.GetTopSales(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(c, http.StatusOK, "Top 3 sales per category retrieved successfully.", gin.H{
		"top_sales_per_category": report,
	})
}
