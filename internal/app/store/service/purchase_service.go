package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"petstore/internal/app/store/entity"
	"petstore/internal/app/store/repository"
	"petstore/internal/app/store/util"
	"petstore/pkg/logger"
	"petstore/pkg/metrics"
)

// PurchaseService обрабатывает оформление покупок
// Координирует транзакционный репозиторий, Redis кеш и Kafka producer
type PurchaseService struct {
	cartRepo     repository.CartRepository
	purchaseRepo repository.PurchaseRepository
	cache        util.StatsCache
	producer     util.MessagePublisher
}

// NewPurchaseService создает новый сервис покупок с внедрением зависимостей
func NewPurchaseService(
	cartRepo repository.CartRepository,
	purchaseRepo repository.PurchaseRepository,
	cache util.StatsCache,
	producer util.MessagePublisher,
) *PurchaseService {
	return &PurchaseService{
		cartRepo:     cartRepo,
		purchaseRepo: purchaseRepo,
		cache:        cache,
		producer:     producer,
	}
}

// Purchase оформляет покупку.
// Проверка остатков, списание и запись заказа с позициями выполняются
// одной транзакцией в репозитории: нехватка остатка по любой строке
// откатывает покупку целиком. Корзина после покупки не очищается -
// поведение исходного API сохранено.
func (s *PurchaseService) Purchase(ctx context.Context, req *entity.PurchaseRequest) (*entity.Purchase, error) {
	exists, err := s.cartRepo.CartExists(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check cart: %w", err)
	}
	if !exists {
		return nil, ErrCartNotFound
	}

	lines := make([]entity.PurchaseLine, len(req.Cart))
	for i, line := range req.Cart {
		lines[i] = entity.PurchaseLine{
			ItemID:   *line.ItemID,
			Quantity: *line.Quantity,
		}
	}

	purchase, err := s.purchaseRepo.CreatePurchase(ctx, req.ClientID, lines)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrItemNotFound):
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, err)
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, err)
		}
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	metrics.PurchasesCreated.Inc()
	metrics.PurchasesTotalAmount.Add(purchase.TotalPrice)

	// Отчет топ-продаж устарел
	if err := s.cache.DeleteTopSales(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate top sales cache")
	}

	s.publishPurchaseEvent(ctx, purchase, len(lines))

	return purchase, nil
}

// publishPurchaseEvent отправляет событие PURCHASE_COMPLETED в Kafka
// Покупка уже зафиксирована, проблемы с Kafka не критичны
func (s *PurchaseService) publishPurchaseEvent(ctx context.Context, purchase *entity.Purchase, itemsCount int) {
	event := entity.PurchaseEvent{
		EventType:  "PURCHASE_COMPLETED",
		OrderID:    purchase.OrderID,
		ClientID:   purchase.ClientID,
		TotalPrice: purchase.TotalPrice,
		ItemsCount: itemsCount,
		Timestamp:  time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal purchase event")
		return
	}

	timer := metrics.NewKafkaProduceTimer("store-service", "purchase_events")
	if err := s.producer.PublishMessage(ctx, purchase.ClientID, data); err != nil {
		timer.Error()
		logger.Error().Err(err).Int64("order_id", purchase.OrderID).Msg("failed to publish purchase event")
		return
	}
	timer.Success()
}
