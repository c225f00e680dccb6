package entity

type CreateItemRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=512"`
	Category     string   `json:"category" validate:"required,min=1,max=512"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	Stock        *int     `json:"stock" validate:"required,gte=0"`
	Description  string   `json:"description" validate:"required,max=512"`
	Manufacturer string   `json:"manufacturer" validate:"required,max=512"`
	Weight       *float64 `json:"weight" validate:"required,gte=0"`
	ImageURL     string   `json:"image_url" validate:"required,max=512"`
}

// UpdateItemRequest - частичное обновление: присутствуют только переданные поля
type UpdateItemRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=512"`
	Category     *string  `json:"category" validate:"omitempty,min=1,max=512"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock        *int     `json:"stock" validate:"omitempty,gte=0"`
	Description  *string  `json:"description" validate:"omitempty,max=512"`
	Manufacturer *string  `json:"manufacturer" validate:"omitempty,max=512"`
	Weight       *float64 `json:"weight" validate:"omitempty,gte=0"`
	ImageURL     *string  `json:"image_url" validate:"omitempty,max=512"`
}

// Patch переводит запрос в ItemPatch c фиксированным перечнем колонок
func (r *UpdateItemRequest) Patch() *ItemPatch {
	return &ItemPatch{
		Name:         r.Name,
		Category:     r.Category,
		Price:        r.Price,
		Stock:        r.Stock,
		Description:  r.Description,
		Manufacturer: r.Manufacturer,
		Weight:       r.Weight,
		ImageURL:     r.ImageURL,
	}
}

type AddCartItemRequest struct {
	ItemID   *int64 `json:"item_id" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,gte=0"`
}

type PurchaseRequest struct {
	ClientID string                `json:"client_id" validate:"required"`
	Cart     []PurchaseLineRequest `json:"cart" validate:"required,min=1,dive"`
}

type PurchaseLineRequest struct {
	ItemID   *int64 `json:"item_id" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,gte=0"`
}

type CreateClientRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=512"`
	Email string `json:"email" validate:"required,email,max=512"`
}

// Response - единый конверт ответа API: {status, message|errors, data}
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Errors  string      `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type PurchaseResponse struct {
	OrderID    int64   `json:"order_id"`
	TotalPrice float64 `json:"total_price"`
}

type CreatedClientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdatedItemResponse - эхо переданных полей плюс идентификатор
type UpdatedItemResponse struct {
	ID           int64    `json:"id"`
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Price        *float64 `json:"price"`
	Stock        *int     `json:"stock"`
	Description  *string  `json:"description"`
	Manufacturer *string  `json:"manufacturer"`
	Weight       *float64 `json:"weight"`
	ImageURL     *string  `json:"image_url"`
}
