package repository

import (
	"context"

	"github.com/jhoicas/comercio-core/internal/domain/entity"
)

// InventoryLevelRepository define el puerto para el espejo de saldos por SKU
// que leen los canales. Es un snapshot best-effort, no la fuente de verdad.
type InventoryLevelRepository interface {
	Get(ctx context.Context, sku string) (*entity.InventoryLevel, error)
	Upsert(ctx context.Context, level *entity.InventoryLevel) error
}
