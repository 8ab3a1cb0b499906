package repository

import (
	"context"

	"github.com/jhoicas/comercio-core/internal/domain/entity"
)

// InvoiceSequenceRepository define el puerto de persistencia para las series
// de numeración. El contador se lee y escribe solo bajo GetForUpdate +
// UpdateCurrentNumber dentro de la transacción del asignador.
type InvoiceSequenceRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InvoiceSequence, error)

	// GetForUpdate carga la serie bloqueando su fila (SELECT ... FOR UPDATE);
	// dos asignaciones concurrentes sobre la misma serie se serializan aquí.
	GetForUpdate(ctx context.Context, id string) (*entity.InvoiceSequence, error)

	UpdateCurrentNumber(ctx context.Context, id string, current int64) error

	// GetDefaultActiveByCompany devuelve la serie activa marcada por defecto
	// de la empresa, o nil si no hay.
	GetDefaultActiveByCompany(ctx context.Context, companyID string) (*entity.InvoiceSequence, error)

	// GetFirstActiveByCompany devuelve la serie activa más antigua (created_at)
	// de la empresa, o nil si no hay ninguna.
	GetFirstActiveByCompany(ctx context.Context, companyID string) (*entity.InvoiceSequence, error)

	ListByCompany(ctx context.Context, companyID string) ([]*entity.InvoiceSequence, error)
}
