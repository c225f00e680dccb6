package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petstore/internal/app/store/entity"
	"petstore/internal/app/store/repository"
	"petstore/internal/app/store/util"
	"petstore/pkg/logger"
	"petstore/pkg/metrics"
)

const (
	categoryCacheTTL = time.Hour
	topSalesCacheTTL = 5 * time.Minute
)

// CatalogService обрабатывает бизнес-логику каталога товаров
// Координирует работу репозиториев и Redis кеша
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
	purchaseRepo repository.PurchaseRepository // для отчета топ-продаж
	cache        util.StatsCache

	// Политика для неизвестных категорий: создать автоматически или
	// отклонить запрос. Интерактивных подтверждений в сервисе не бывает.
	autoCreateCategories bool
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
	purchaseRepo repository.PurchaseRepository,
	cache util.StatsCache,
	autoCreateCategories bool,
) *CatalogService {
	return &CatalogService{
		categoryRepo:         categoryRepo,
		itemRepo:             itemRepo,
		purchaseRepo:         purchaseRepo,
		cache:                cache,
		autoCreateCategories: autoCreateCategories,
	}
}

// CreateItem создает новый товар
// Категория должна существовать, либо создается автоматически при
// включенной политике auto-create
func (s *CatalogService) CreateItem(ctx context.Context, req *entity.CreateItemRequest) (*entity.Item, error) {
	if err := s.ensureCategory(ctx, req.Category); err != nil {
		return nil, err
	}

	item := &entity.Item{
		Name:           req.Name,
		Category:       req.Category,
		Price:          *req.Price,
		Stock:          *req.Stock,
		Description:    req.Description,
		Manufacturer:   req.Manufacturer,
		Weight:         *req.Weight,
		ImageURL:       req.ImageURL,
		TotalUnitSales: 0, // новый товар еще не продавался
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	metrics.ItemsCreated.Inc()

	return item, nil
}

// GetItem получает товар по ID
func (s *CatalogService) GetItem(ctx context.Context, id int64) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// UpdateItem частично обновляет товар: меняются только переданные поля
func (s *CatalogService) UpdateItem(ctx context.Context, id int64, req *entity.UpdateItemRequest) (*entity.UpdatedItemResponse, error) {
	patch := req.Patch()
	if patch.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	// Сначала проверяем существование товара: отсутствие товара это 404,
	// отсутствие категории - 400
	if _, err := s.itemRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if patch.Category != nil {
		if err := s.ensureCategory(ctx, *patch.Category); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Patch(ctx, id, patch); err != nil {
		switch {
		case errors.Is(err, repository.ErrItemNotFound):
			return nil, ErrItemNotFound
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return &entity.UpdatedItemResponse{
		ID:           id,
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Stock:        req.Stock,
		Description:  req.Description,
		Manufacturer: req.Manufacturer,
		Weight:       req.Weight,
		ImageURL:     req.ImageURL,
	}, nil
}

// ListItems возвращает страницу товаров с фильтрами
func (s *CatalogService) ListItems(ctx context.Context, filter entity.ItemFilter) ([]entity.Item, error) {
	if filter.Page < 1 || filter.Limit < 1 {
		return nil, ErrInvalidPagination
	}

	if filter.Sort != "" && filter.Sort != "name" && filter.Sort != "price" {
		return nil, ErrInvalidSort
	}

	if filter.Category != "" {
		exists, err := s.categoryExists(ctx, filter.Category)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrCategoryNotFound
		}
	}

	items, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

// SearchItems ищет товары по подстроке имени без учета регистра
// Пустой результат трактуется как not found - контракт API зафиксирован
func (s *CatalogService) SearchItems(ctx context.Context, text string) ([]entity.Item, error) {
	items, err := s.itemRepo.SearchByName(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	if len(items) == 0 {
		return nil, ErrNoItemsFound
	}

	return items, nil
}

// GetTopSales возвращает топ-3 продаж на категорию с кешированием в Redis
func (s *CatalogService) GetTopSales(ctx context.Context) (entity.TopSalesReport, error) {
	report, err := s.cache.GetTopSales(ctx)
	if err == nil && report != nil {
		metrics.RecordCacheHit("store-service", "stats")
		return report, nil
	}
	metrics.RecordCacheMiss("store-service", "stats")

	report, err = s.purchaseRepo.TopSalesPerCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get top sales: %w", err)
	}

	if err := s.cache.SetTopSales(ctx, report, topSalesCacheTTL); err != nil {
		// Отчет получен из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache top sales report")
	}

	return report, nil
}

// ensureCategory проверяет категорию и применяет политику auto-create
func (s *CatalogService) ensureCategory(ctx context.Context, name string) error {
	exists, err := s.categoryExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if !s.autoCreateCategories {
		return ErrCategoryNotFound
	}

	if err := s.categoryRepo.Create(ctx, name); err != nil {
		// Конкурентный запрос мог создать категорию первым
		if !errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return fmt.Errorf("failed to auto-create category: %w", err)
		}
	}
	logger.Info().Str("category", name).Msg("category auto-created")

	if err := s.cache.DeleteCategoryNames(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate category cache")
	}

	return nil
}

// categoryExists проверяет наличие категории через кеш имен
func (s *CatalogService) categoryExists(ctx context.Context, name string) (bool, error) {
	names, err := s.cache.GetCategoryNames(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read category cache")
		names = nil
	}

	if names == nil {
		// Cache miss - загружаем из PostgreSQL и кешируем
		names, err = s.categoryRepo.GetAllNames(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to get categories: %w", err)
		}

		if err := s.cache.SetCategoryNames(ctx, names, categoryCacheTTL); err != nil {
			logger.Warn().Err(err).Msg("failed to cache category names")
		}
	}

	for _, n := range names {
		if n == name {
			return true, nil
		}
	}

	return false, nil
}
