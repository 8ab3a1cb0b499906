package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la factura frente al proveedor externo.
const (
	InvoiceStatusPending = "pending" // número asignado, esperando confirmación
	InvoiceStatusIssued  = "issued"  // confirmada por el proveedor
	InvoiceStatusFailed  = "failed"  // el proveedor rechazó la emisión
)

// Estados de pago derivados del estado financiero de la orden.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
	PaymentStatusUnpaid  = "unpaid"
)

// Invoice es la factura de una orden (una a una, clave por OrderID).
// La fila se escribe solo cuando el proveedor confirma, directo en issued;
// si el proveedor falla no se persiste nada y el número se devuelve a la serie.
// Los estados pending y failed cubren filas cargadas por tooling externo.
type Invoice struct {
	ID                string
	OrderID           string
	CompanyID         string
	SequenceID        string
	Prefix            string
	Number            int64
	FormattedNumber   string
	Status            string
	ProviderInvoiceID string // referencia del proveedor externo
	PDFURL            string
	PaymentStatus     string
	PaidAmount        decimal.Decimal
	ErrorMessage      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time // soft delete para facturas en estado de error
}
