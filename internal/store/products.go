package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"minierp/pkg/models"
)

// CreateProduct inserts a new catalog entry. The caller assigns ProductIndex
// (user-supplied or numbering.NextProductIndex); a taken index yields
// ErrDuplicateIndex.
func (s *Store) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO products (name, product_index, unit, stock, vat_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.Name, p.ProductIndex, p.Unit, p.Stock.String(), p.VATRate.String(),
	).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.Product{}, fmt.Errorf("index %d: %w", p.ProductIndex, ErrDuplicateIndex)
		}
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// FindProductByIndex returns the product with the given catalog index.
func (s *Store) FindProductByIndex(ctx context.Context, index int64) (models.Product, error) {
	row := s.pool.QueryRow(ctx, productSelect+` WHERE product_index = $1`, index)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product by index %d: %w", index, err)
	}
	return p, nil
}

// ListProducts returns products, optionally filtered by a case-insensitive
// name substring, ordered by catalog index.
func (s *Store) ListProducts(ctx context.Context, nameFilter string) ([]models.Product, error) {
	query := productSelect
	args := []any{}
	if nameFilter != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%'`
		args = append(args, nameFilter)
	}
	query += ` ORDER BY product_index`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// MaxProductIndex returns the highest catalog index in use. found is false
// when the catalog is empty.
func (s *Store) MaxProductIndex(ctx context.Context) (maxIndex int64, found bool, err error) {
	var max *int64
	if err := s.pool.QueryRow(ctx, `SELECT MAX(product_index) FROM products`).Scan(&max); err != nil {
		return 0, false, fmt.Errorf("max product index: %w", err)
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

const productSelect = `
	SELECT id, name, product_index, unit, stock::text, vat_rate::text
	FROM products`

func scanProduct(row pgx.Row) (models.Product, error) {
	var (
		p           models.Product
		stock, rate string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.ProductIndex, &p.Unit, &stock, &rate); err != nil {
		return models.Product{}, err
	}

	var err error
	if p.Stock, err = decimal.NewFromString(stock); err != nil {
		return models.Product{}, fmt.Errorf("parse stock %q: %w", stock, err)
	}
	if p.VATRate, err = decimal.NewFromString(rate); err != nil {
		return models.Product{}, fmt.Errorf("parse vat rate %q: %w", rate, err)
	}
	return p, nil
}
