package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un SKU del catálogo (simple o compuesto).
// CurrentBalance solo lo muta el Stock Ledger, nunca se escribe directo;
// el invariante CurrentBalance >= 0 se garantiza en el caso de uso, no aquí.
type Item struct {
	ID               string
	SKU              string // código único
	Name             string
	Unit             string // unidad de medida (und, kg, m...)
	CurrentBalance   decimal.Decimal
	ReorderThreshold decimal.Decimal
	IsComposite      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ItemComponent una línea de la receta (bill of materials) de un ítem compuesto.
// Multiplier > 0: cuántas unidades del componente consume una unidad del compuesto.
type ItemComponent struct {
	ItemID          string // ítem compuesto dueño de la receta
	ComponentItemID string
	Multiplier      decimal.Decimal
	Position        int // orden dentro de la receta
}
