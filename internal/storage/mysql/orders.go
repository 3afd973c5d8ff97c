package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vue-supply/internal/storage"
)

func (s *Storage) GetOrdersMonth(ctx context.Context, year int, month int, search string) ([]*storage.Order, error) {
	const op = "storage.mysql.orders.GetOrdersMonth"

	var stmt string
	var args []interface{}

	if search != "" {
		stmt = `
			SELECT id, order_num, vendor_id, customer, quantity, order_date, delivery_date, dop_info
			FROM supply_orders
			WHERE order_num LIKE ?
		`
		args = append(args, "%"+search+"%")
	} else {
		// Иначе фильтруем по месяцу размещения
		startOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		endOfMonth := startOfMonth.AddDate(0, 1, 0)

		stmt = `
			SELECT id, order_num, vendor_id, customer, quantity, order_date, delivery_date, dop_info
			FROM supply_orders
			WHERE order_date >= ? AND order_date < ?
		`
		args = []interface{}{startOfMonth, endOfMonth}
	}

	stmt += " ORDER BY order_date, id"

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения заказов за месяц: %w", op, err)
	}
	defer rows.Close()

	var orders []*storage.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
	}

	return orders, nil
}

func (s *Storage) GetOrderByID(ctx context.Context, id int) (*storage.Order, error) {
	const op = "storage.mysql.orders.GetOrderByID"

	stmt := `
		SELECT id, order_num, vendor_id, customer, quantity, order_date, delivery_date, dop_info
		FROM supply_orders
		WHERE id = ?
	`

	order, err := scanOrder(s.db.QueryRowContext(ctx, stmt, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: заказ id=%d: %w", op, id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*storage.Order, error) {
	var order storage.Order
	var deliveryDate sql.NullTime
	var dopInfo sql.NullString

	err := row.Scan(&order.ID, &order.OrderNum, &order.VendorID, &order.Customer,
		&order.Quantity, &order.OrderDate, &deliveryDate, &dopInfo)
	if err != nil {
		return nil, err
	}

	if deliveryDate.Valid {
		d := deliveryDate.Time
		order.DeliveryDate = &d
	}
	if dopInfo.Valid {
		order.DopInfo = dopInfo.String
	}

	return &order, nil
}
