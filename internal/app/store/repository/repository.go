package repository

import (
	"context"
	"errors"

	"petstore/internal/app/store/entity"
)

var (
	// Стандартные ошибки репозиториев для обработки в service layer
	ErrItemNotFound          = errors.New("item not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrClientNotFound        = errors.New("client not found")
	ErrCartNotFound          = errors.New("cart not found")
	ErrCartItemNotFound      = errors.New("item not in cart")
	ErrDuplicateCartItem     = errors.New("item already in cart")
	ErrInsufficientStock     = errors.New("insufficient stock")
)

type CategoryRepository interface {
	Create(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	GetAllNames(ctx context.Context) ([]string, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	List(ctx context.Context, filter entity.ItemFilter) ([]entity.Item, error)
	Patch(ctx context.Context, id int64, patch *entity.ItemPatch) error
	SearchByName(ctx context.Context, substring string) ([]entity.Item, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type CartRepository interface {
	CreateCart(ctx context.Context, clientID string) error
	CartExists(ctx context.Context, clientID string) (bool, error)
	AddItem(ctx context.Context, item *entity.CartItem) error
	RemoveItem(ctx context.Context, clientID string, itemID int64) error
	ItemInCart(ctx context.Context, clientID string, itemID int64) (bool, error)
}

type PurchaseRepository interface {
	// CreatePurchase выполняет покупку одной транзакцией: блокирует строки
	// товаров, проверяет и списывает остатки, пишет purchase и purchase_items
	CreatePurchase(ctx context.Context, clientID string, lines []entity.PurchaseLine) (*entity.Purchase, error)
	TopSalesPerCategory(ctx context.Context) (entity.TopSalesReport, error)
	GetClientOrders(ctx context.Context, clientID string) ([]entity.ClientOrder, error)
	ListClientSummaries(ctx context.Context, filter entity.ClientFilter) ([]entity.ClientSummary, error)
	// RefreshClientPurchaseCache пересчитывает кеш-колонки last_purchase_date
	// и last_item_bought у клиентов, возвращает число обновленных строк
	RefreshClientPurchaseCache(ctx context.Context) (int64, error)
}
