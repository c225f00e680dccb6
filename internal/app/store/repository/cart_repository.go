package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"petstore/internal/app/store/entity"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository создает новый репозиторий корзин
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// CreateCart создает корзину клиента (одна на клиента)
func (r *cartRepository) CreateCart(ctx context.Context, clientID string) error {
	cart := entity.ShoppingCart{ClientID: clientID}
	result := r.db.WithContext(ctx).Create(&cart)
	if result.Error != nil {
		return fmt.Errorf("failed to create cart: %w", result.Error)
	}
	return nil
}

// CartExists проверяет наличие корзины у клиента
func (r *cartRepository) CartExists(ctx context.Context, clientID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entity.ShoppingCart{}).
		Where("client_id = ?", clientID).
		Count(&count)

	if result.Error != nil {
		return false, fmt.Errorf("failed to check cart existence: %w", result.Error)
	}

	return count > 0, nil
}

// AddItem добавляет позицию в корзину
// Повторное добавление той же пары (корзина, товар) нарушает составной
// первичный ключ и возвращает ErrDuplicateCartItem - слияния количеств нет
func (r *cartRepository) AddItem(ctx context.Context, item *entity.CartItem) error {
	result := r.db.WithContext(ctx).Create(item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCartItem
		}
		return fmt.Errorf("failed to add cart item: %w", result.Error)
	}
	return nil
}

// RemoveItem удаляет позицию из корзины
func (r *cartRepository) RemoveItem(ctx context.Context, clientID string, itemID int64) error {
	result := r.db.WithContext(ctx).
		Where("client_id = ? AND item_id = ?", clientID, itemID).
		Delete(&entity.CartItem{})

	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// ItemInCart проверяет наличие позиции в корзине клиента
func (r *cartRepository) ItemInCart(ctx context.Context, clientID string, itemID int64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entity.CartItem{}).
		Where("client_id = ? AND item_id = ?", clientID, itemID).
		Count(&count)

	if result.Error != nil {
		return false, fmt.Errorf("failed to check cart item: %w", result.Error)
	}

	return count > 0, nil
}
