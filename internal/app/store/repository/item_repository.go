package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"petstore/internal/app/store/entity"
)

const itemColumns = `item_id, name, category, price, stock, description, manufacturer, weight, image_url, total_unit_sales`

type itemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository создает новый репозиторий товаров
func NewItemRepository(db *pgxpool.Pool) ItemRepository {
	return &itemRepository{db: db}
}

// Create создает новый товар и проставляет сгенерированный item_id
func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (name, category, price, stock, description, manufacturer, weight, image_url, total_unit_sales)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING item_id
	`

	err := r.db.QueryRow(ctx, query,
		item.Name,
		item.Category,
		item.Price,
		item.Stock,
		item.Description,
		item.Manufacturer,
		item.Weight,
		item.ImageURL,
		item.TotalUnitSales,
	).Scan(&item.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to create item: %w", err)
	}

	return nil
}

// GetByID получает товар по ID
func (r *itemRepository) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item by id: %w", err)
	}

	return item, nil
}

// List возвращает страницу товаров с необязательным фильтром по категории
// и сортировкой. Допустимые значения сортировки проверены в service layer,
// но перечень колонок здесь фиксирован повторно.
func (r *itemRepository) List(ctx context.Context, filter entity.ItemFilter) ([]entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	args := []interface{}{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" WHERE category = $%d", len(args))
	}

	switch filter.Sort {
	case "name":
		query += " ORDER BY name ASC"
	case "price":
		query += " ORDER BY price ASC"
	default:
		// порядок вставки
		query += " ORDER BY item_id ASC"
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, (filter.Page-1)*filter.Limit)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// Patch обновляет только переданные колонки товара
// SQL собирается из фиксированного перечня колонок, значения идут параметрами
func (r *itemRepository) Patch(ctx context.Context, id int64, patch *entity.ItemPatch) error {
	var sets []string
	var args []interface{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Category != nil {
		addSet("category", *patch.Category)
	}
	if patch.Price != nil {
		addSet("price", *patch.Price)
	}
	if patch.Stock != nil {
		addSet("stock", *patch.Stock)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Manufacturer != nil {
		addSet("manufacturer", *patch.Manufacturer)
	}
	if patch.Weight != nil {
		addSet("weight", *patch.Weight)
	}
	if patch.ImageURL != nil {
		addSet("image_url", *patch.ImageURL)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE items SET %s WHERE item_id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to patch item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// SearchByName ищет товары по подстроке имени без учета регистра
func (r *itemRepository) SearchByName(ctx context.Context, substring string) ([]entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name ILIKE '%' || $1 || '%' ORDER BY item_id ASC`

	rows, err := r.db.Query(ctx, query, substring)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var item entity.Item
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Price,
		&item.Stock,
		&item.Description,
		&item.Manufacturer,
		&item.Weight,
		&item.ImageURL,
		&item.TotalUnitSales,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func collectItems(rows pgx.Rows) ([]entity.Item, error) {
	var items []entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}
