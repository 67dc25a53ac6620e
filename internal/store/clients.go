package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"minierp/pkg/models"
)

// CreateClient inserts a new client and returns it with its assigned ID.
func (s *Store) CreateClient(ctx context.Context, c models.Client) (models.Client, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO clients
			(category, company_name, vat_id, first_name, last_name,
			 email, phone_number, address_street, address_zipcode, address_city)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		c.Category, c.CompanyName, c.VATID, c.FirstName, c.LastName,
		c.Email, c.PhoneNumber, c.AddressStreet, c.AddressZipcode, c.AddressCity,
	).Scan(&c.ID)
	if err != nil {
		return models.Client{}, fmt.Errorf("insert client: %w", err)
	}
	return c, nil
}

// GetClient returns one client by ID.
func (s *Store) GetClient(ctx context.Context, id int64) (models.Client, error) {
	row := s.pool.QueryRow(ctx, clientSelect+` WHERE id = $1`, id)
	c, err := scanClient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Client{}, ErrNotFound
	}
	if err != nil {
		return models.Client{}, fmt.Errorf("get client %d: %w", id, err)
	}
	return c, nil
}

// ListClients returns all clients ordered by ID.
func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	rows, err := s.pool.Query(ctx, clientSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

const clientSelect = `
	SELECT id, category, company_name, vat_id, first_name, last_name,
	       email, phone_number, address_street, address_zipcode, address_city
	FROM clients`

func scanClient(row pgx.Row) (models.Client, error) {
	var c models.Client
	err := row.Scan(
		&c.ID, &c.Category, &c.CompanyName, &c.VATID, &c.FirstName, &c.LastName,
		&c.Email, &c.PhoneNumber, &c.AddressStreet, &c.AddressZipcode, &c.AddressCity,
	)
	return c, err
}
