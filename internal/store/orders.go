package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"minierp/internal/numbering"
	"minierp/pkg/models"
)

// CreateOrder persists an order and its items in one transaction. The order
// row is inserted first so its ID is available for the item rows; if any
// item insert fails the whole order is rolled back. The returned order
// carries the database-assigned ID and order date.
func (s *Store) CreateOrder(ctx context.Context, clientID int64, items []models.OrderItem) (models.Order, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order := models.Order{
		ClientID:      clientID,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (client_id)
		VALUES ($1)
		RETURNING id, order_date`,
		clientID,
	).Scan(&order.ID, &order.OrderDate)
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for i, item := range items {
		item.OrderID = order.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_per_unit, vat_rate)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			order.ID, item.ProductID, item.Quantity.String(),
			item.PricePerUnit.String(), item.VATRate.String(),
		).Scan(&item.ID)
		if err != nil {
			return models.Order{}, fmt.Errorf("insert item %d: %w", i, err)
		}
		order.Items = append(order.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("commit order: %w", err)
	}

	s.log.Info().
		Int64("order_id", order.ID).
		Int64("client_id", clientID).
		Int("items", len(order.Items)).
		Msg("Order created")
	return order, nil
}

// GetOrder returns one order with its items preloaded.
func (s *Store) GetOrder(ctx context.Context, id int64) (models.Order, error) {
	row := s.pool.QueryRow(ctx, orderSelect+` WHERE id = $1`, id)
	order, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}

	if order.Items, err = s.orderItems(ctx, id); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// ListOrders returns orders newest first, optionally restricted to one
// client, with items preloaded.
func (s *Store) ListOrders(ctx context.Context, clientID int64) ([]models.Order, error) {
	query := orderSelect
	args := []any{}
	if clientID > 0 {
		query += ` WHERE client_id = $1`
		args = append(args, clientID)
	}
	query += ` ORDER BY order_date DESC, id DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].Items, err = s.orderItems(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// InvoicedOrdersInMonth returns the numbering snapshot: every order that
// already carries an invoice number and whose order_date falls in the given
// calendar month, newest order ID first.
func (s *Store) InvoicedOrdersInMonth(ctx context.Context, year, month int) ([]numbering.InvoicedOrder, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, invoice_number, order_date
		FROM orders
		WHERE invoice_number IS NOT NULL
		  AND date_part('year', order_date) = $1
		  AND date_part('month', order_date) = $2
		ORDER BY id DESC`,
		year, month,
	)
	if err != nil {
		return nil, fmt.Errorf("scan invoiced orders: %w", err)
	}
	defer rows.Close()

	var history []numbering.InvoicedOrder
	for rows.Next() {
		var h numbering.InvoicedOrder
		if err := rows.Scan(&h.OrderID, &h.InvoiceNumber, &h.OrderDate); err != nil {
			return nil, fmt.Errorf("scan invoiced order: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// AssignInvoice stamps an order with its invoice number and payment due
// date. Assignment is single-use: an order that already carries a number is
// left untouched and ErrAlreadyInvoiced is returned. A concurrent assignment
// of the same number to another order trips the UNIQUE constraint and
// surfaces as a plain database error.
func (s *Store) AssignInvoice(ctx context.Context, orderID int64, number string, dueDate time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders
		SET invoice_number = $2, payment_due_date = $3
		WHERE id = $1 AND invoice_number IS NULL`,
		orderID, number, dueDate,
	)
	if err != nil {
		return fmt.Errorf("assign invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetOrder(ctx, orderID); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrAlreadyInvoiced
	}

	s.log.Info().
		Int64("order_id", orderID).
		Str("invoice_number", number).
		Time("due_date", dueDate).
		Msg("Invoice number assigned")
	return nil
}

// MarkPaid sets an invoiced order's payment status to PAID.
func (s *Store) MarkPaid(ctx context.Context, orderID int64) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders
		SET payment_status = $2
		WHERE id = $1 AND invoice_number IS NOT NULL`,
		orderID, models.PaymentStatusPaid,
	)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RefreshOverdue flips unpaid orders whose due date has passed to OVERDUE
// and returns how many were updated.
func (s *Store) RefreshOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders
		SET payment_status = $2
		WHERE payment_status = $1 AND payment_due_date < $3`,
		models.PaymentStatusUnpaid, models.PaymentStatusOverdue, now,
	)
	if err != nil {
		return 0, fmt.Errorf("refresh overdue: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RecordIssuedDocument stores the record of a rendered invoice document.
func (s *Store) RecordIssuedDocument(ctx context.Context, doc models.IssuedDocument) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO issued_documents (id, order_id, invoice_number, issued_at)
		VALUES ($1, $2, $3, $4)`,
		doc.ID, doc.OrderID, doc.InvoiceNumber, doc.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("record issued document: %w", err)
	}
	return nil
}

const orderSelect = `
	SELECT id, order_date, client_id, invoice_number, payment_due_date, payment_status
	FROM orders`

func scanOrder(row pgx.Row) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.OrderDate, &o.ClientID, &o.InvoiceNumber,
		&o.PaymentDueDate, &o.PaymentStatus)
	return o, err
}

// orderItems loads an order's lines with product name and unit joined in.
func (s *Store) orderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, p.name, p.unit,
		       i.quantity::text, i.price_per_unit::text, i.vat_rate::text
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("load items for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var (
			it              models.OrderItem
			qty, price, vat string
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName,
			&it.Unit, &qty, &price, &vat); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if it.Quantity, err = decimal.NewFromString(qty); err != nil {
			return nil, fmt.Errorf("parse quantity %q: %w", qty, err)
		}
		if it.PricePerUnit, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		if it.VATRate, err = decimal.NewFromString(vat); err != nil {
			return nil, fmt.Errorf("parse vat rate %q: %w", vat, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
