package dto

// IssueInvoiceResponse resultado de la emisión de una orden.
type IssueInvoiceResponse struct {
	OrderID       string `json:"order_id"`
	Success       bool   `json:"success"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	InvoiceSeries string `json:"invoice_series,omitempty"`
	CompanyID     string `json:"company_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

// BatchIssueRequest entrada para facturar varias órdenes en secuencia.
type BatchIssueRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// BatchIssueResponse agregado de la emisión por lotes.
type BatchIssueResponse struct {
	Issued  int                    `json:"issued"`
	Failed  int                    `json:"failed"`
	Results []IssueInvoiceResponse `json:"results"`
}

// SequencePreviewResponse próximo número de una serie (solo lectura).
type SequencePreviewResponse struct {
	SequenceID string `json:"sequence_id"`
	Prefix     string `json:"prefix"`
	Number     int64  `json:"number"`
	Formatted  string `json:"formatted"`
}
