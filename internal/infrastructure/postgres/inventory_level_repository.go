package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo implementación del espejo de saldos sobre PostgreSQL.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

// Get obtiene el saldo espejo de un SKU (nil si no hay snapshot todavía).
func (r *InventoryLevelRepo) Get(ctx context.Context, sku string) (*entity.InventoryLevel, error) {
	query := `SELECT sku, quantity, updated_at FROM inventory_levels WHERE sku = $1`
	var lv entity.InventoryLevel
	err := r.q.QueryRow(ctx, query, sku).Scan(&lv.SKU, &lv.Quantity, &lv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory level: %w", err)
	}
	return &lv, nil
}

// Upsert inserta o actualiza el snapshot de saldo por SKU.
func (r *InventoryLevelRepo) Upsert(ctx context.Context, level *entity.InventoryLevel) error {
	query := `
		INSERT INTO inventory_levels (sku, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (sku)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, level.SKU, level.Quantity)
	if err != nil {
		return fmt.Errorf("upsert inventory level: %w", err)
	}
	return nil
}
