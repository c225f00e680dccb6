package service

import (
	"context"

	"petstore/internal/app/store/entity"
)

type CatalogServiceInterface interface {
	CreateItem(ctx context.Context, req *entity.CreateItemRequest) (*entity.Item, error)
	GetItem(ctx context.Context, id int64) (*entity.Item, error)
	UpdateItem(ctx context.Context, id int64, req *entity.UpdateItemRequest) (*entity.UpdatedItemResponse, error)
	ListItems(ctx context.Context, filter entity.ItemFilter) ([]entity.Item, error)
	SearchItems(ctx context.Context, text string) ([]entity.Item, error)
	GetTopSales(ctx context.Context) (entity.TopSalesReport, error)
}

type CartServiceInterface interface {
	AddItem(ctx context.Context, clientID string, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, clientID string, itemID int64) error
}

type ClientServiceInterface interface {
	CreateClient(ctx context.Context, req *entity.CreateClientRequest) (*entity.Client, error)
	GetClient(ctx context.Context, id string) (*entity.Client, error)
	ListClients(ctx context.Context, purchaseDate, itemBought string) ([]entity.ClientSummary, error)
	GetClientOrders(ctx context.Context, clientID string) ([]entity.ClientOrder, error)
	RefreshPurchaseCache(ctx context.Context) error
}

type PurchaseServiceInterface interface {
	Purchase(ctx context.Context, req *entity.PurchaseRequest) (*entity.Purchase, error)
}
