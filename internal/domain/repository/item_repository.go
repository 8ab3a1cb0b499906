package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para el catálogo de ítems.
// El saldo se actualiza únicamente vía UpdateBalance dentro de la transacción
// del ledger; el resto del CRUD del catálogo vive fuera del core.
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)

	// GetForUpdate carga el ítem bloqueando su fila (SELECT ... FOR UPDATE)
	// para serializar el read-modify-write del saldo por ítem.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)

	// ListBySKUs carga en una sola consulta los ítems de todos los SKUs dados
	// (para procesar una orden sin una consulta por línea).
	ListBySKUs(ctx context.Context, skus []string) ([]*entity.Item, error)

	// GetComponents devuelve la receta del ítem ordenada por posición.
	GetComponents(ctx context.Context, itemID string) ([]entity.ItemComponent, error)

	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
}
