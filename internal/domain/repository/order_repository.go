package repository

import (
	"context"

	"github.com/jhoicas/comercio-core/internal/domain/entity"
)

// OrderRepository define el puerto de lectura de órdenes y la actualización
// de su estado de facturación (lo único que el core escribe en órdenes).
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListLineItems(ctx context.Context, orderID string) ([]*entity.OrderLineItem, error)

	// UpdateInvoicing actualiza estado, empresa facturadora y marca intercompany
	// después de una emisión confirmada.
	UpdateInvoicing(ctx context.Context, orderID, status, invoicedBy string, intercompany bool) error
}

// StoreRepository define el puerto de lectura de tiendas.
type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Store, error)
}

// StockTransferRepository define el puerto de lectura del traslado previo a facturar.
type StockTransferRepository interface {
	// GetByOrderID devuelve el traslado asociado a la orden, o nil si no hay.
	GetByOrderID(ctx context.Context, orderID string) (*entity.StockTransfer, error)
}
