package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-core/internal/domain"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
	"github.com/jhoicas/comercio-core/pkg/logger"
)

// StockLedger registra movimientos de inventario de forma transaccional con
// bloqueo de fila (SELECT FOR UPDATE) y mantiene el saldo corriente por ítem.
// El espejo por SKU (inventory_levels) se actualiza después del commit,
// best-effort: su falla se registra en el log pero nunca revierte el ledger.
type StockLedger struct {
	txRunner  TxRunner
	levelRepo repository.InventoryLevelRepository
	log       *logger.Logger
}

var _ MovementRecorder = (*StockLedger)(nil)

// NewStockLedger construye el ledger.
func NewStockLedger(txRunner TxRunner, levelRepo repository.InventoryLevelRepository, log *logger.Logger) *StockLedger {
	return &StockLedger{txRunner: txRunner, levelRepo: levelRepo, log: log}
}

// MovementInput entrada para registrar un movimiento. Quantity se toma en
// valor absoluto; el signo lo determina Kind (OUT/ADJUSTMENT_MINUS restan).
type MovementInput struct {
	ItemID    string
	Kind      string
	Quantity  decimal.Decimal
	OrderID   string
	InvoiceID string
	Reference string
	Notes     string
	CreatedBy string
}

// RecordMovement carga el ítem con bloqueo de fila, verifica que el nuevo saldo
// no quede negativo, actualiza el saldo y agrega el movimiento inmutable con
// saldo antes/después — todo en una sola transacción. Dos movimientos
// concurrentes sobre el mismo ítem se serializan en el FOR UPDATE.
func (l *StockLedger) RecordMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	if input.ItemID == "" || !entity.IsValidMovementKind(input.Kind) {
		return nil, domain.ErrInvalidInput
	}
	quantity := input.Quantity.Abs()
	if quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	delta := quantity
	if entity.IsOutboundKind(input.Kind) {
		delta = quantity.Neg()
	}

	now := time.Now()
	var movement *entity.StockMovement
	var sku string
	var newBalance decimal.Decimal

	err := l.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del ítem para serializar el read-modify-write del saldo
		item, err := itemRepo.GetForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}

		newBalance = item.CurrentBalance.Add(delta)
		if newBalance.IsNegative() {
			// No se intenta la mutación: saldo y libro quedan intactos
			return &domain.InsufficientStockError{
				SKU:       item.SKU,
				Current:   item.CurrentBalance,
				Requested: quantity,
			}
		}
		sku = item.SKU

		if err := itemRepo.UpdateBalance(ctx, item.ID, newBalance); err != nil {
			return err
		}
		movement = &entity.StockMovement{
			ID:            uuid.New().String(),
			ItemID:        item.ID,
			Kind:          input.Kind,
			QuantityDelta: delta,
			BalanceBefore: item.CurrentBalance,
			BalanceAfter:  newBalance,
			OrderID:       input.OrderID,
			InvoiceID:     input.InvoiceID,
			Reference:     input.Reference,
			Notes:         input.Notes,
			CreatedAt:     now,
			CreatedBy:     input.CreatedBy,
		}
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	// Espejo por SKU fuera de la transacción: si falla no se revierte el ledger
	if l.levelRepo != nil {
		if err := l.levelRepo.Upsert(ctx, &entity.InventoryLevel{
			SKU:       sku,
			Quantity:  newBalance,
			UpdatedAt: now,
		}); err != nil && l.log != nil {
			l.log.Warn().Err(err).Str("sku", sku).Msg("no se pudo actualizar el espejo de saldo")
		}
	}

	return movement, nil
}
