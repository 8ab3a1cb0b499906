package repository

import (
	"context"

	"github.com/jhoicas/comercio-core/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos. Los movimientos son inmutables: solo Create y lecturas.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.StockMovement, error)
}
