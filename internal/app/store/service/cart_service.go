package service

import (
	"context"
	"errors"
	"fmt"

	"petstore/internal/app/store/entity"
	"petstore/internal/app/store/repository"
)

// CartService обрабатывает бизнес-логику корзин покупателей
type CartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.ItemRepository
}

// NewCartService создает новый сервис корзин
func NewCartService(cartRepo repository.CartRepository, itemRepo repository.ItemRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

// AddItem добавляет позицию в корзину клиента
// Повторное добавление той же пары (корзина, товар) отклоняется:
// составной ключ не допускает дубликатов, слияния количеств нет
func (s *CartService) AddItem(ctx context.Context, clientID string, itemID int64, quantity int) error {
	exists, err := s.cartRepo.CartExists(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to check cart: %w", err)
	}
	if !exists {
		return ErrCartNotFound
	}

	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to get item: %w", err)
	}

	cartItem := &entity.CartItem{
		ClientID: clientID,
		ItemID:   itemID,
		Quantity: quantity,
	}

	if err := s.cartRepo.AddItem(ctx, cartItem); err != nil {
		if errors.Is(err, repository.ErrDuplicateCartItem) {
			return ErrDuplicateCartItem
		}
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// RemoveItem удаляет позицию из корзины клиента
func (s *CartService) RemoveItem(ctx context.Context, clientID string, itemID int64) error {
	cartExists, err := s.cartRepo.CartExists(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to check cart: %w", err)
	}

	itemExists := true
	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		if !errors.Is(err, repository.ErrItemNotFound) {
			return fmt.Errorf("failed to get item: %w", err)
		}
		itemExists = false
	}

	// Отсутствие клиента или товара это 404, отсутствие позиции в
	// существующей корзине - 400
	if !cartExists || !itemExists {
		return ErrCartNotFound
	}

	if err := s.cartRepo.RemoveItem(ctx, clientID, itemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return ErrCartItemNotFound
		}
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}
