package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo lectura de empresas facturadoras sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// GetByID obtiene una empresa por ID (nil si no existe).
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT id, name, tax_id, vat_rate, is_primary,
		       provider_api_key, provider_api_secret, default_sequence_id, created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	var apiKey, apiSecret, defaultSeq *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.VATRate, &c.IsPrimary,
		&apiKey, &apiSecret, &defaultSeq, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	if apiKey != nil {
		c.ProviderAPIKey = *apiKey
	}
	if apiSecret != nil {
		c.ProviderAPISecret = *apiSecret
	}
	if defaultSeq != nil {
		c.DefaultSequenceID = *defaultSeq
	}
	return &c, nil
}
