package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"petstore/internal/app/store/entity"
)

type clientRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewClientRepository создает новый репозиторий клиентов
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create создает нового клиента
// ID клиента (UUID-строка) генерируется в service layer
func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	result := r.db.WithContext(ctx).Create(client)
	if result.Error != nil {
		return fmt.Errorf("failed to create client: %w", result.Error)
	}
	return nil
}

// GetByID получает клиента по ID
func (r *clientRepository) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var client entity.Client
	result := r.db.WithContext(ctx).First(&client, "client_id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", result.Error)
	}

	return &client, nil
}

// Exists проверяет наличие клиента по ID
func (r *clientRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entity.Client{}).
		Where("client_id = ?", id).
		Count(&count)

	if result.Error != nil {
		return false, fmt.Errorf("failed to check client existence: %w", result.Error)
	}

	return count > 0, nil
}
