package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"petstore/internal/app/store/entity"
	"petstore/internal/app/store/repository"
	"petstore/pkg/logger"
	"petstore/pkg/metrics"
)

// ClientService обрабатывает бизнес-логику клиентов
type ClientService struct {
	clientRepo   repository.ClientRepository
	cartRepo     repository.CartRepository
	purchaseRepo repository.PurchaseRepository
}

// NewClientService создает новый сервис клиентов
func NewClientService(
	clientRepo repository.ClientRepository,
	cartRepo repository.CartRepository,
	purchaseRepo repository.PurchaseRepository,
) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		cartRepo:     cartRepo,
		purchaseRepo: purchaseRepo,
	}
}

// CreateClient создает клиента и его корзину
// ID генерируется как UUID: счетчик строк не дает уникальности
// при конкурентных запросах
func (s *ClientService) CreateClient(ctx context.Context, req *entity.CreateClientRequest) (*entity.Client, error) {
	client := &entity.Client{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Email: req.Email,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	// Корзина одна на клиента, создаем сразу
	if err := s.cartRepo.CreateCart(ctx, client.ID); err != nil {
		return nil, fmt.Errorf("failed to create cart for client: %w", err)
	}

	metrics.ClientsRegistered.Inc()

	return client, nil
}

// ListClients возвращает клиентов со сведениями о последней покупке.
// purchaseDate фильтрует по точной дате покупки (ISO-дата),
// itemBought - по точному имени купленного товара.
func (s *ClientService) ListClients(ctx context.Context, purchaseDate, itemBought string) ([]entity.ClientSummary, error) {
	filter := entity.ClientFilter{ItemBought: itemBought}

	if purchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", purchaseDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		filter.PurchaseDate = &parsed
	}

	summaries, err := s.purchaseRepo.ListClientSummaries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return summaries, nil
}

// GetClientOrders возвращает заказы клиента с вложенными позициями
func (s *ClientService) GetClientOrders(ctx context.Context, clientID string) ([]entity.ClientOrder, error) {
	exists, err := s.clientRepo.Exists(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check client: %w", err)
	}
	if !exists {
		return nil, ErrClientNotFound
	}

	orders, err := s.purchaseRepo.GetClientOrders(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client orders: %w", err)
	}

	if len(orders) == 0 {
		return nil, ErrNoOrdersFound
	}

	return orders, nil
}

// RefreshPurchaseCache пересчитывает кеш-колонки последней покупки клиентов
// Вызывается фоновым планировщиком
func (s *ClientService) RefreshPurchaseCache(ctx context.Context) error {
	updated, err := s.purchaseRepo.RefreshClientPurchaseCache(ctx)
	if err != nil {
		metrics.WorkerClientCacheRefresh.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to refresh client purchase cache: %w", err)
	}

	metrics.WorkerClientCacheRefresh.WithLabelValues("success").Inc()
	logger.Info().Int64("clients_updated", updated).Msg("client purchase cache refreshed")

	return nil
}

// GetClient получает клиента по ID
func (s *ClientService) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}
