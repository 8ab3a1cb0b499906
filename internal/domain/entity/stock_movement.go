package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementKindIN              = "IN"               // entrada (compra, devolución)
	MovementKindOUT             = "OUT"              // salida (venta)
	MovementKindADJUSTMENTPlus  = "ADJUSTMENT_PLUS"  // ajuste positivo
	MovementKindADJUSTMENTMinus = "ADJUSTMENT_MINUS" // ajuste negativo
)

// StockMovement representa un movimiento inmutable del libro de inventario.
// QuantityDelta lleva signo; BalanceAfter = BalanceBefore + QuantityDelta.
// Reproducir los movimientos de un ítem en orden de creación reconstruye su saldo.
type StockMovement struct {
	ID            string
	ItemID        string
	Kind          string
	QuantityDelta decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	OrderID       string // opcional: orden que originó el movimiento
	InvoiceID     string // opcional: factura asociada
	Reference     string // texto libre (ej: "return:RMA-123")
	Notes         string
	CreatedAt     time.Time
	CreatedBy     string
}

// IsOutboundKind indica si el tipo de movimiento resta del saldo.
func IsOutboundKind(kind string) bool {
	return kind == MovementKindOUT || kind == MovementKindADJUSTMENTMinus
}

// IsValidMovementKind valida el tipo de movimiento.
func IsValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindIN, MovementKindOUT, MovementKindADJUSTMENTPlus, MovementKindADJUSTMENTMinus:
		return true
	}
	return false
}
