package entity

import (
	"time"
)

// Category представляет категорию товаров
// Имя категории является первичным ключом (натуральный ключ из схемы магазина)
type Category struct {
	Name string `json:"name" db:"name"`
}

// Item представляет товар в каталоге зоомагазина
type Item struct {
	ID             int64   `json:"item_id" db:"item_id"`
	Name           string  `json:"name" db:"name"`
	Category       string  `json:"category" db:"category"` // FK на categories.name
	Price          float64 `json:"price" db:"price"`
	Stock          int     `json:"stock" db:"stock"`
	Description    string  `json:"description" db:"description"`
	Manufacturer   string  `json:"manufacturer" db:"manufacturer"`
	Weight         float64 `json:"weight" db:"weight"`
	ImageURL       string  `json:"image_url" db:"image_url"`
	TotalUnitSales int     `json:"total_unit_sales" db:"total_unit_sales"` // накопительный счетчик продаж
}

// ItemPatch описывает частичное обновление товара
// nil-поля не попадают в UPDATE, перечень колонок фиксирован
type ItemPatch struct {
	Name         *string
	Category     *string
	Price        *float64
	Stock        *int
	Description  *string
	Manufacturer *string
	Weight       *float64
	ImageURL     *string
}

// IsEmpty сообщает, что ни одно поле для обновления не задано
func (p *ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Stock == nil &&
		p.Description == nil && p.Manufacturer == nil && p.Weight == nil && p.ImageURL == nil
}

// ItemFilter задает параметры выборки списка товаров
type ItemFilter struct {
	Page     int
	Limit    int
	Category string // пустая строка - без фильтра
	Sort     string // "name", "price" или пустая строка
}

// Client представляет клиента магазина
// ID генерируется как UUID-строка при создании
type Client struct {
	ID               string     `json:"id" gorm:"column:client_id;type:varchar(64);primaryKey"`
	Name             string     `json:"name" gorm:"type:varchar(512);not null"`
	Email            string     `json:"email" gorm:"type:varchar(512);not null"`
	LastPurchaseDate *time.Time `json:"last_purchase_date,omitempty" gorm:"column:last_purchase_date"`
	LastItemBought   *string    `json:"last_item_bought,omitempty" gorm:"column:last_item_bought;type:varchar(512)"`
}

// TableName указывает имя таблицы для GORM
func (Client) TableName() string {
	return "clients"
}

// ShoppingCart представляет корзину клиента (одна на клиента)
type ShoppingCart struct {
	ClientID  string    `json:"client_id" gorm:"column:client_id;type:varchar(64);primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (ShoppingCart) TableName() string {
	return "shopping_carts"
}

// CartItem представляет позицию в корзине
// Составной ключ (client_id, item_id): повторное добавление той же пары
// нарушает первичный ключ и отклоняется
type CartItem struct {
	ClientID string `json:"client_id" gorm:"column:client_id;type:varchar(64);primaryKey"`
	ItemID   int64  `json:"item_id" gorm:"column:item_id;primaryKey"`
	Quantity int    `json:"quantity" gorm:"not null;check:quantity >= 0"`
}

// TableName указывает имя таблицы для GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Purchase представляет оформленный заказ
type Purchase struct {
	OrderID    int64     `json:"order_id" db:"order_id"`
	TotalPrice float64   `json:"total_price" db:"total_price"`
	OrderDate  time.Time `json:"order_date" db:"order_date"`
	ClientID   string    `json:"client_id" db:"client_id"`
}

// PurchaseLine задает строку покупки (товар и количество)
type PurchaseLine struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

// ClientOrder представляет заказ клиента со списком позиций
type ClientOrder struct {
	OrderID    int64          `json:"order_id"`
	TotalPrice float64        `json:"total_price"`
	OrderDate  time.Time      `json:"order_date"`
	Items      []PurchaseLine `json:"items"`
}

// ClientSummary представляет клиента в отчете со сведениями о последней покупке
type ClientSummary struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	LastPurchaseDate *time.Time `json:"last_purchase_date"`
	LastItemBought   *string    `json:"last_item_bought"`
}

// ClientFilter задает фильтры отчета по клиентам
type ClientFilter struct {
	PurchaseDate *time.Time // точная дата покупки (только дата, без времени)
	ItemBought   string     // точное имя купленного товара
}

// TopSaleEntry представляет товар в топе продаж категории
type TopSaleEntry struct {
	ItemName   string `json:"item_name"`
	TotalSales int    `json:"total_sales"`
}

// TopSalesReport отображает категорию в ее топ-3 товаров по суммарным продажам
type TopSalesReport map[string][]TopSaleEntry

// PurchaseEvent представляет событие оформленной покупки для Kafka
type PurchaseEvent struct {
	EventType  string    `json:"event_type"` // PURCHASE_COMPLETED
	OrderID    int64     `json:"order_id"`
	ClientID   string    `json:"client_id"`
	TotalPrice float64   `json:"total_price"`
	ItemsCount int       `json:"items_count"`
	Timestamp  time.Time `json:"timestamp"`
}
