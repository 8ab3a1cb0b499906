package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, sku, name, unit, current_balance, reorder_threshold, is_composite, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.SKU, &it.Name, &it.Unit, &it.CurrentBalance,
		&it.ReorderThreshold, &it.IsComposite, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

// GetByID obtiene un ítem por ID (nil si no existe).
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetBySKU obtiene un ítem por SKU (nil si no existe).
func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, sku))
	if err != nil {
		return nil, fmt.Errorf("get item by sku: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el ítem y bloquea su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// ListBySKUs carga en una sola consulta los ítems de los SKUs dados.
func (r *ItemRepo) ListBySKUs(ctx context.Context, skus []string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE sku = ANY($1)`
	rows, err := r.q.Query(ctx, query, skus)
	if err != nil {
		return nil, fmt.Errorf("list items by skus: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.SKU, &it.Name, &it.Unit, &it.CurrentBalance,
			&it.ReorderThreshold, &it.IsComposite, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetComponents devuelve la receta del ítem ordenada por posición.
func (r *ItemRepo) GetComponents(ctx context.Context, itemID string) ([]entity.ItemComponent, error) {
	query := `
		SELECT item_id, component_item_id, multiplier, position
		FROM item_components WHERE item_id = $1
		ORDER BY position`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("get components: %w", err)
	}
	defer rows.Close()
	var components []entity.ItemComponent
	for rows.Next() {
		var c entity.ItemComponent
		if err := rows.Scan(&c.ItemID, &c.ComponentItemID, &c.Multiplier, &c.Position); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

// UpdateBalance escribe el nuevo saldo del ítem (solo lo llama el ledger, en tx).
func (r *ItemRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	query := `UPDATE items SET current_balance = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, balance)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update balance: ítem %s no existe", id)
	}
	return nil
}
