package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"minierp/pkg/models"
)

// GetCompanyProfile returns the single company profile row, or ErrNotFound
// if none has been saved yet.
func (s *Store) GetCompanyProfile(ctx context.Context) (models.CompanyProfile, error) {
	var p models.CompanyProfile
	err := s.pool.QueryRow(ctx, `
		SELECT id, company_name, vat_id, address_street, address_zipcode,
		       address_city, bank_account_number, additional_info
		FROM company_profile
		ORDER BY id
		LIMIT 1`).Scan(
		&p.ID, &p.CompanyName, &p.VATID, &p.AddressStreet, &p.AddressZipcode,
		&p.AddressCity, &p.BankAccountNumber, &p.AdditionalInfo,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.CompanyProfile{}, ErrNotFound
	}
	if err != nil {
		return models.CompanyProfile{}, fmt.Errorf("get company profile: %w", err)
	}
	return p, nil
}

// SaveCompanyProfile inserts the profile on first save and updates it on
// every later one.
func (s *Store) SaveCompanyProfile(ctx context.Context, p models.CompanyProfile) (models.CompanyProfile, error) {
	existing, err := s.GetCompanyProfile(ctx)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.CompanyProfile{}, err
	}

	if errors.Is(err, ErrNotFound) {
		err = s.pool.QueryRow(ctx, `
			INSERT INTO company_profile
				(company_name, vat_id, address_street, address_zipcode,
				 address_city, bank_account_number, additional_info)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			p.CompanyName, p.VATID, p.AddressStreet, p.AddressZipcode,
			p.AddressCity, p.BankAccountNumber, p.AdditionalInfo,
		).Scan(&p.ID)
		if err != nil {
			return models.CompanyProfile{}, fmt.Errorf("insert company profile: %w", err)
		}
		return p, nil
	}

	p.ID = existing.ID
	_, err = s.pool.Exec(ctx, `
		UPDATE company_profile
		SET company_name = $2, vat_id = $3, address_street = $4,
		    address_zipcode = $5, address_city = $6,
		    bank_account_number = $7, additional_info = $8
		WHERE id = $1`,
		p.ID, p.CompanyName, p.VATID, p.AddressStreet, p.AddressZipcode,
		p.AddressCity, p.BankAccountNumber, p.AdditionalInfo,
	)
	if err != nil {
		return models.CompanyProfile{}, fmt.Errorf("update company profile: %w", err)
	}
	return p, nil
}
