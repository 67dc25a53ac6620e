// Package store is the PostgreSQL persistence layer. It owns the schema and
// all SQL; domain logic above it only sees models and plain errors.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"minierp/internal/logger"
)

// Common storage errors
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyInvoiced is returned when an invoice number is assigned to
	// an order that already carries one. Assignment is single-use.
	ErrAlreadyInvoiced = errors.New("order already has an invoice number")

	// ErrDuplicateIndex is returned when a product is created with an index
	// that is already taken.
	ErrDuplicateIndex = errors.New("product index already exists")
)

// Config holds the database connection settings.
type Config struct {
	URL            string
	ConnectTimeout time.Duration
}

// Store wraps a pgx connection pool with the application's queries.
type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// Open connects to PostgreSQL, verifies the connection with a ping and
// returns a ready Store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	log := logger.WithComponent("store")

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info().Str("host", poolConfig.ConnConfig.Host).Msg("Connected to PostgreSQL")
	return &Store{pool: pool, log: log}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// InitSchema creates all tables if they do not exist yet. Called on every
// startup, mirroring the original deployment's create-on-boot behavior.
func (s *Store) InitSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS company_profile (
	id                  BIGSERIAL PRIMARY KEY,
	company_name        TEXT NOT NULL DEFAULT '',
	vat_id              TEXT NOT NULL DEFAULT '',
	address_street      TEXT NOT NULL DEFAULT '',
	address_zipcode     TEXT NOT NULL DEFAULT '',
	address_city        TEXT NOT NULL DEFAULT '',
	bank_account_number TEXT NOT NULL DEFAULT '',
	additional_info     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS clients (
	id              BIGSERIAL PRIMARY KEY,
	category        TEXT NOT NULL,
	company_name    TEXT NOT NULL DEFAULT '',
	vat_id          TEXT NOT NULL DEFAULT '',
	first_name      TEXT NOT NULL DEFAULT '',
	last_name       TEXT NOT NULL DEFAULT '',
	email           TEXT NOT NULL DEFAULT '',
	phone_number    TEXT NOT NULL DEFAULT '',
	address_street  TEXT NOT NULL DEFAULT '',
	address_zipcode TEXT NOT NULL DEFAULT '',
	address_city    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS products (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	product_index BIGINT NOT NULL UNIQUE,
	unit          TEXT NOT NULL,
	stock         NUMERIC NOT NULL DEFAULT 0,
	vat_rate      NUMERIC NOT NULL DEFAULT 23
);

CREATE TABLE IF NOT EXISTS orders (
	id               BIGSERIAL PRIMARY KEY,
	order_date       TIMESTAMPTZ NOT NULL DEFAULT now(),
	client_id        BIGINT NOT NULL REFERENCES clients(id),
	invoice_number   TEXT UNIQUE,
	payment_due_date TIMESTAMPTZ,
	payment_status   TEXT NOT NULL DEFAULT 'UNPAID'
);

CREATE TABLE IF NOT EXISTS order_items (
	id             BIGSERIAL PRIMARY KEY,
	order_id       BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id     BIGINT NOT NULL REFERENCES products(id),
	quantity       NUMERIC NOT NULL,
	price_per_unit NUMERIC NOT NULL,
	vat_rate       NUMERIC NOT NULL
);

CREATE TABLE IF NOT EXISTS issued_documents (
	id             UUID PRIMARY KEY,
	order_id       BIGINT NOT NULL REFERENCES orders(id),
	invoice_number TEXT NOT NULL,
	issued_at      TIMESTAMPTZ NOT NULL
);
`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	s.log.Debug().Msg("Schema initialized")
	return nil
}
