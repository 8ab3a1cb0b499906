package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE de movimientos.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, item_id, kind, quantity_delta, balance_before, balance_after,
		order_id, invoice_id, reference, notes, created_at, created_by`

// Create persiste un movimiento del libro de inventario.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.Kind, m.QuantityDelta, m.BalanceBefore, m.BalanceAfter,
		nullable(m.OrderID), nullable(m.InvoiceID), m.Reference, m.Notes, m.CreatedAt, nullable(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByItem lista movimientos de un ítem en orden de creación (más reciente primero).
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	return collectMovements(rows)
}

// ListByOrder lista los movimientos originados por una orden.
func (r *StockMovementRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE order_id = $1
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list movements by order: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var orderID, invoiceID, createdBy *string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Kind, &m.QuantityDelta, &m.BalanceBefore, &m.BalanceAfter,
			&orderID, &invoiceID, &m.Reference, &m.Notes, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if orderID != nil {
			m.OrderID = *orderID
		}
		if invoiceID != nil {
			m.InvoiceID = *invoiceID
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
