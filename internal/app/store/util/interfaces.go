package util

import (
	"context"
	"time"

	"petstore/internal/app/store/entity"
)

// StatsCache интерфейс для работы с Redis кешем
// Используется для dependency injection и упрощения тестирования
type StatsCache interface {
	SetTopSales(ctx context.Context, report entity.TopSalesReport, ttl time.Duration) error
	GetTopSales(ctx context.Context) (entity.TopSalesReport, error)
	DeleteTopSales(ctx context.Context) error
	SetCategoryNames(ctx context.Context, names []string, ttl time.Duration) error
	GetCategoryNames(ctx context.Context) ([]string, error)
	DeleteCategoryNames(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
