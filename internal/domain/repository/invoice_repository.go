package repository

import (
	"context"

	"github.com/jhoicas/comercio-core/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas.
type InvoiceRepository interface {
	// GetByOrderID devuelve la factura vigente (no soft-deleted) de la orden, o nil.
	GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error)

	// UpsertByOrder inserta o actualiza la factura de la orden (clave order_id).
	UpsertByOrder(ctx context.Context, invoice *entity.Invoice) error

	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
}
