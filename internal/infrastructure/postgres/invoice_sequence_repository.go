package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

var _ repository.InvoiceSequenceRepository = (*InvoiceSequenceRepo)(nil)

// InvoiceSequenceRepo implementación sobre PostgreSQL (usable con pool o tx).
type InvoiceSequenceRepo struct {
	q Querier
}

// NewInvoiceSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceSequenceRepository(q Querier) *InvoiceSequenceRepo {
	return &InvoiceSequenceRepo{q: q}
}

const sequenceColumns = `id, company_id, prefix, current_number, start_number, number_padding,
		is_active, is_default, provider_series_code, created_at, updated_at`

func scanSequence(row pgx.Row) (*entity.InvoiceSequence, error) {
	var s entity.InvoiceSequence
	var providerCode *string
	err := row.Scan(&s.ID, &s.CompanyID, &s.Prefix, &s.CurrentNumber, &s.StartNumber,
		&s.NumberPadding, &s.IsActive, &s.IsDefault, &providerCode, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if providerCode != nil {
		s.ProviderSeriesCode = *providerCode
	}
	return &s, nil
}

// GetByID obtiene una serie por ID (nil si no existe).
func (r *InvoiceSequenceRepo) GetByID(ctx context.Context, id string) (*entity.InvoiceSequence, error) {
	query := `SELECT ` + sequenceColumns + ` FROM invoice_sequences WHERE id = $1`
	s, err := scanSequence(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get sequence: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene la serie y bloquea su fila (SELECT FOR UPDATE).
// El asignador hace aquí el read-increment serializado por serie.
func (r *InvoiceSequenceRepo) GetForUpdate(ctx context.Context, id string) (*entity.InvoiceSequence, error) {
	query := `SELECT ` + sequenceColumns + ` FROM invoice_sequences WHERE id = $1 FOR UPDATE`
	s, err := scanSequence(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get sequence for update: %w", err)
	}
	return s, nil
}

// UpdateCurrentNumber escribe el contador de la serie.
func (r *InvoiceSequenceRepo) UpdateCurrentNumber(ctx context.Context, id string, current int64) error {
	query := `UPDATE invoice_sequences SET current_number = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, current)
	if err != nil {
		return fmt.Errorf("update current number: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update current number: serie %s no existe", id)
	}
	return nil
}

// GetDefaultActiveByCompany devuelve la serie activa por defecto de la empresa, o nil.
func (r *InvoiceSequenceRepo) GetDefaultActiveByCompany(ctx context.Context, companyID string) (*entity.InvoiceSequence, error) {
	query := `
		SELECT ` + sequenceColumns + ` FROM invoice_sequences
		WHERE company_id = $1 AND is_active AND is_default
		ORDER BY created_at LIMIT 1`
	s, err := scanSequence(r.q.QueryRow(ctx, query, companyID))
	if err != nil {
		return nil, fmt.Errorf("get default sequence: %w", err)
	}
	return s, nil
}

// GetFirstActiveByCompany devuelve la serie activa más antigua de la empresa, o nil.
func (r *InvoiceSequenceRepo) GetFirstActiveByCompany(ctx context.Context, companyID string) (*entity.InvoiceSequence, error) {
	query := `
		SELECT ` + sequenceColumns + ` FROM invoice_sequences
		WHERE company_id = $1 AND is_active
		ORDER BY created_at LIMIT 1`
	s, err := scanSequence(r.q.QueryRow(ctx, query, companyID))
	if err != nil {
		return nil, fmt.Errorf("get first active sequence: %w", err)
	}
	return s, nil
}

// ListByCompany lista todas las series de una empresa (activas e inactivas).
func (r *InvoiceSequenceRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.InvoiceSequence, error) {
	query := `SELECT ` + sequenceColumns + ` FROM invoice_sequences WHERE company_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceSequence
	for rows.Next() {
		var s entity.InvoiceSequence
		var providerCode *string
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Prefix, &s.CurrentNumber, &s.StartNumber,
			&s.NumberPadding, &s.IsActive, &s.IsDefault, &providerCode, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sequence: %w", err)
		}
		if providerCode != nil {
			s.ProviderSeriesCode = *providerCode
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
