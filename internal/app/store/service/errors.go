package service

import "errors"

// Ошибки бизнес-логики для обработки в handlers
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrCartItemNotFound  = errors.New("item not in cart")
	ErrDuplicateCartItem = errors.New("item already in cart")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNoItemsFound      = errors.New("no items found")
	ErrNoOrdersFound     = errors.New("client has no orders")
	ErrNoFieldsToUpdate  = errors.New("no fields to update")
	ErrInvalidPagination = errors.New("page and limit must be positive")
	ErrInvalidSort       = errors.New("sort must be name or price")
	ErrInvalidDate       = errors.New("invalid date format, expected YYYY-MM-DD")
)
