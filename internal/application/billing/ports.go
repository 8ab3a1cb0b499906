package billing

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

// SequenceTxRunner ejecuta una función dentro de una transacción con el
// repositorio de series atado a esa tx. El read-increment del consecutivo
// ocurre completo dentro de una sola transacción.
type SequenceTxRunner interface {
	RunSequence(ctx context.Context, fn func(seqRepo repository.InvoiceSequenceRepository) error) error
}

// ProviderInvoiceLine una línea del payload para el proveedor de facturación.
type ProviderInvoiceLine struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	VATRate   decimal.Decimal `json:"vat_rate"`
}

// ProviderInvoicePayload payload de emisión para el proveedor externo.
type ProviderInvoicePayload struct {
	OrderNumber   string                `json:"order_number"`
	SeriesCode    string                `json:"series_code,omitempty"`
	InvoiceNumber string                `json:"invoice_number"`
	CompanyTaxID  string                `json:"company_tax_id"`
	APIKey        string                `json:"-"`
	APISecret     string                `json:"-"`
	Lines         []ProviderInvoiceLine `json:"lines"`
	Total         decimal.Decimal       `json:"total"`
}

// ProviderInvoiceResult respuesta del proveedor. Cualquier respuesta con
// Success=false (o error de transporte) se trata uniformemente como falla
// del proveedor y dispara el rollback del consecutivo.
type ProviderInvoiceResult struct {
	Success   bool
	InvoiceID string
	PDFURL    string
	Error     string
}

// ProviderClient es el cliente del proveedor externo de facturación.
type ProviderClient interface {
	CreateInvoice(ctx context.Context, payload *ProviderInvoicePayload) (*ProviderInvoiceResult, error)

	// GetInvoicePDFURL consulta la URL del PDF de una factura ya emitida
	// (cuando la respuesta de emisión no la trajo).
	GetInvoicePDFURL(ctx context.Context, providerInvoiceID string) (string, error)
}

// ActivityLogger notifica una factura emitida (fire-and-forget: la
// implementación nunca retorna error ni debe tumbar la emisión).
type ActivityLogger interface {
	InvoiceIssued(ctx context.Context, orderID, invoiceNumber, companyID string)
}
