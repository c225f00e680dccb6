package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"petstore/internal/app/store/entity"
)

const (
	topSalesCacheKey      = "stats:top_sales"
	categoryNamesCacheKey = "categories:names"
)

type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// SetTopSales кеширует отчет топ-продаж по категориям
func (r *RedisClient) SetTopSales(ctx context.Context, report entity.TopSalesReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal top sales report: %w", err)
	}

	if err := r.client.Set(ctx, topSalesCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set top sales in cache: %w", err)
	}

	return nil
}

// GetTopSales возвращает отчет из кеша, (nil, nil) при промахе
func (r *RedisClient) GetTopSales(ctx context.Context) (entity.TopSalesReport, error) {
	data, err := r.client.Get(ctx, topSalesCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get top sales from cache: %w", err)
	}

	var report entity.TopSalesReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal top sales report: %w", err)
	}

	return report, nil
}

// DeleteTopSales инвалидирует кеш отчета (вызывается после покупки)
func (r *RedisClient) DeleteTopSales(ctx context.Context) error {
	if err := r.client.Del(ctx, topSalesCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete top sales from cache: %w", err)
	}
	return nil
}

// SetCategoryNames кеширует список имен категорий
func (r *RedisClient) SetCategoryNames(ctx context.Context, names []string, ttl time.Duration) error {
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to marshal category names: %w", err)
	}

	if err := r.client.Set(ctx, categoryNamesCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set category names in cache: %w", err)
	}

	return nil
}

// GetCategoryNames возвращает имена категорий из кеша, (nil, nil) при промахе
func (r *RedisClient) GetCategoryNames(ctx context.Context) ([]string, error) {
	data, err := r.client.Get(ctx, categoryNamesCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category names from cache: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category names: %w", err)
	}

	return names, nil
}

// DeleteCategoryNames инвалидирует кеш категорий (после создания категории)
func (r *RedisClient) DeleteCategoryNames(ctx context.Context) error {
	if err := r.client.Del(ctx, categoryNamesCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete category names from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
