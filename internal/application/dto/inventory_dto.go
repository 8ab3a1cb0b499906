package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest entrada para registrar un movimiento manual.
type RegisterMovementRequest struct {
	ItemID    string          `json:"item_id"`
	Kind      string          `json:"kind"` // IN, OUT, ADJUSTMENT_PLUS, ADJUSTMENT_MINUS
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// MovementResponse movimiento registrado, con saldo antes/después.
type MovementResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	Kind          string          `json:"kind"`
	QuantityDelta decimal.Decimal `json:"quantity_delta"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
}

// ProcessOrderStockRequest entrada para descontar stock de una orden.
type ProcessOrderStockRequest struct {
	InvoiceID string `json:"invoice_id"`
}

// ProcessReturnRequest entrada para reponer stock por devolución.
type ProcessReturnRequest struct {
	ReturnRef string `json:"return_ref"`
}

// StockProcessResponse resultado agregado del procesamiento de una orden.
type StockProcessResponse struct {
	ProcessedCount int                `json:"processed_count"`
	Errors         []string           `json:"errors"`
	Movements      []MovementResponse `json:"movements"`
}
