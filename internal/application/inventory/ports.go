package inventory

import (
	"context"

	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger:
// saldo del ítem y movimiento se escriben juntos o no se escriben.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// MovementRecorder es la cara del Stock Ledger que consume el procesador de
// órdenes (y cualquier otro caller que registre movimientos).
type MovementRecorder interface {
	RecordMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error)
}
