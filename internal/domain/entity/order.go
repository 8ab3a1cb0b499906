package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados financieros de la orden (los fija la capa de canales, fuera del core).
const (
	FinancialStatusPaid      = "paid"
	FinancialStatusPartially = "partially_paid"
	FinancialStatusPending   = "pending"
)

// Order es la cabecera de una orden multicanal. El core solo la lee y actualiza
// estado de facturación; la captura y sincronización de canales es externa.
type Order struct {
	ID               string
	StoreID          string
	OrderNumber      string
	Status           string
	FinancialStatus  string
	BillingCompanyID string // override por orden; vacío = empresa de la tienda
	InvoicedBy       string // empresa que terminó facturando la orden
	Intercompany     bool   // marcada para liquidación entre empresas
	Total            decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderLineItem una línea de la orden. SKU puede venir vacío desde el canal
// (producto no mapeado); esas líneas se saltan en el procesamiento de stock.
type OrderLineItem struct {
	ID        string
	OrderID   string
	SKU       string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Store es la tienda/canal al que pertenece la orden.
type Store struct {
	ID        string
	Name      string
	CompanyID string // empresa facturadora por defecto
}

// Estados del traslado de bodega previo a facturar.
const (
	StockTransferCompleted = "completed"
	StockTransferPending   = "pending"
)

// StockTransfer es el traslado de mercancía asociado a una orden; si existe y
// no está completado, la orden no se puede facturar todavía.
type StockTransfer struct {
	ID        string
	OrderID   string
	Status    string
	CreatedAt time.Time
}
