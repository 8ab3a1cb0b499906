package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLevel es el espejo desnormalizado del saldo por SKU que consumen
// los canales de venta (snapshot, no fuente de verdad). Se actualiza best-effort
// fuera de la transacción del ledger; si falla, se registra en el log y se sigue.
type InventoryLevel struct {
	SKU       string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
