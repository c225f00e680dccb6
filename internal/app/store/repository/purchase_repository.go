package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"petstore/internal/app/store/entity"
)

type purchaseRepository struct {
	db *pgxpool.Pool
}

// NewPurchaseRepository создает новый репозиторий покупок
func NewPurchaseRepository(db *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// CreatePurchase оформляет покупку одной транзакцией.
// Каждая строка товара читается с FOR UPDATE: два конкурентных оформления
// одного товара сериализуются на блокировке строки, и второе видит уже
// списанный остаток. Любая ошибка откатывает транзакцию целиком.
func (r *purchaseRepository) CreatePurchase(ctx context.Context, clientID string, lines []entity.PurchaseLine) (*entity.Purchase, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin purchase transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var totalPrice float64

	for _, line := range lines {
		var stock int
		var price float64

		err := tx.QueryRow(ctx,
			`SELECT stock, price FROM items WHERE item_id = $1 FOR UPDATE`,
			line.ItemID,
		).Scan(&stock, &price)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("item %d: %w", line.ItemID, ErrItemNotFound)
			}
			return nil, fmt.Errorf("failed to lock item %d: %w", line.ItemID, err)
		}

		if line.Quantity > stock {
			return nil, fmt.Errorf("item %d: %w", line.ItemID, ErrInsufficientStock)
		}

		_, err = tx.Exec(ctx,
			`UPDATE items SET stock = stock - $1, total_unit_sales = total_unit_sales + $1 WHERE item_id = $2`,
			line.Quantity, line.ItemID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement stock for item %d: %w", line.ItemID, err)
		}

		totalPrice += float64(line.Quantity) * price
	}

	purchase := &entity.Purchase{
		TotalPrice: totalPrice,
		OrderDate:  time.Now(),
		ClientID:   clientID,
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO purchases (total_price, order_date, client_id) VALUES ($1, $2, $3) RETURNING order_id`,
		purchase.TotalPrice, purchase.OrderDate, purchase.ClientID,
	).Scan(&purchase.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert purchase: %w", err)
	}

	for _, line := range lines {
		_, err = tx.Exec(ctx,
			`INSERT INTO purchase_items (order_id, item_id, quantity) VALUES ($1, $2, $3)`,
			purchase.OrderID, line.ItemID, line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert purchase item %d: %w", line.ItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	return purchase, nil
}

// TopSalesPerCategory агрегирует продажи и возвращает топ-3 товаров
// на категорию по суммарному количеству проданных единиц
func (r *purchaseRepository) TopSalesPerCategory(ctx context.Context) (entity.TopSalesReport, error) {
	query := `
		SELECT c.name AS category_name, i.name AS item_name, SUM(pi.quantity) AS total_sales
		FROM items i
		JOIN purchase_items pi ON i.item_id = pi.item_id
		JOIN purchases p ON pi.order_id = p.order_id
		JOIN categories c ON i.category = c.name
		GROUP BY c.name, i.name
		ORDER BY c.name ASC, total_sales DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query top sales: %w", err)
	}
	defer rows.Close()

	report := make(entity.TopSalesReport)
	for rows.Next() {
		var category, itemName string
		var totalSales int

		if err := rows.Scan(&category, &itemName, &totalSales); err != nil {
			return nil, fmt.Errorf("failed to scan top sales row: %w", err)
		}

		// строки уже отсортированы по убыванию продаж внутри категории
		if len(report[category]) < 3 {
			report[category] = append(report[category], entity.TopSaleEntry{
				ItemName:   itemName,
				TotalSales: totalSales,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top sales: %w", err)
	}

	return report, nil
}

// GetClientOrders возвращает заказы клиента с позициями, сгруппированными по заказу
func (r *purchaseRepository) GetClientOrders(ctx context.Context, clientID string) ([]entity.ClientOrder, error) {
	query := `
		SELECT p.order_id, p.total_price, p.order_date, pi.item_id, pi.quantity
		FROM purchases p
		JOIN purchase_items pi ON p.order_id = pi.order_id
		WHERE p.client_id = $1
		ORDER BY p.order_date DESC, p.order_id, pi.item_id
	`

	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query client orders: %w", err)
	}
	defer rows.Close()

	var orders []entity.ClientOrder
	index := make(map[int64]int)

	for rows.Next() {
		var orderID int64
		var totalPrice float64
		var orderDate time.Time
		var line entity.PurchaseLine

		if err := rows.Scan(&orderID, &totalPrice, &orderDate, &line.ItemID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan client order row: %w", err)
		}

		i, ok := index[orderID]
		if !ok {
			orders = append(orders, entity.ClientOrder{
				OrderID:    orderID,
				TotalPrice: totalPrice,
				OrderDate:  orderDate,
			})
			i = len(orders) - 1
			index[orderID] = i
		}
		orders[i].Items = append(orders[i].Items, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client orders: %w", err)
	}

	return orders, nil
}

// ListClientSummaries возвращает клиентов со сведениями о последней покупке,
// отсортированных по дате последней покупки по убыванию (NULL в конце)
func (r *purchaseRepository) ListClientSummaries(ctx context.Context, filter entity.ClientFilter) ([]entity.ClientSummary, error) {
	query := `
		SELECT cl.client_id, cl.name, cl.email,
		       MAX(p.order_date) AS last_purchase_date,
		       MAX(i.name) AS last_item_bought
		FROM clients cl
		LEFT JOIN purchases p ON cl.client_id = p.client_id
		LEFT JOIN purchase_items pi ON p.order_id = pi.order_id
		LEFT JOIN items i ON pi.item_id = i.item_id
	`

	var conditions []string
	var args []interface{}

	if filter.PurchaseDate != nil {
		args = append(args, *filter.PurchaseDate)
		conditions = append(conditions, fmt.Sprintf("p.order_date::date = $%d", len(args)))
	}
	if filter.ItemBought != "" {
		args = append(args, filter.ItemBought)
		conditions = append(conditions, fmt.Sprintf("i.name = $%d", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += `
		GROUP BY cl.client_id, cl.name, cl.email
		ORDER BY last_purchase_date DESC NULLS LAST
	`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query client summaries: %w", err)
	}
	defer rows.Close()

	var summaries []entity.ClientSummary
	for rows.Next() {
		var s entity.ClientSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.LastPurchaseDate, &s.LastItemBought); err != nil {
			return nil, fmt.Errorf("failed to scan client summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client summaries: %w", err)
	}

	return summaries, nil
}

// RefreshClientPurchaseCache пересчитывает кеш-колонки последней покупки
// у клиентов по фактическим данным purchases/purchase_items
func (r *purchaseRepository) RefreshClientPurchaseCache(ctx context.Context) (int64, error) {
	query := `
		UPDATE clients cl
		SET last_purchase_date = agg.last_date,
		    last_item_bought = agg.last_item
		FROM (
			SELECT p.client_id,
			       MAX(p.order_date)::date AS last_date,
			       (ARRAY_AGG(i.name ORDER BY p.order_date DESC, pi.item_id DESC))[1] AS last_item
			FROM purchases p
			JOIN purchase_items pi ON p.order_id = pi.order_id
			JOIN items i ON pi.item_id = i.item_id
			GROUP BY p.client_id
		) agg
		WHERE cl.client_id = agg.client_id
		  AND (cl.last_purchase_date IS DISTINCT FROM agg.last_date
		       OR cl.last_item_bought IS DISTINCT FROM agg.last_item)
	`

	result, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to refresh client purchase cache: %w", err)
	}

	return result.RowsAffected(), nil
}
