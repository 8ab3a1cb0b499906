package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company es una entidad facturadora del grupo. IsPrimary marca la empresa
// principal; facturar con otra empresa deja la orden marcada intercompany.
type Company struct {
	ID                string
	Name              string
	TaxID             string
	VATRate           decimal.Decimal // ej: 0.19
	IsPrimary         bool
	ProviderAPIKey    string // credenciales del proveedor de facturación
	ProviderAPISecret string
	DefaultSequenceID string // serie por defecto (opcional)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasProviderCredentials indica si la empresa puede emitir con el proveedor externo.
func (c *Company) HasProviderCredentials() bool {
	return c.ProviderAPIKey != "" && c.ProviderAPISecret != ""
}
