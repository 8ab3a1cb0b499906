package provider

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/jhoicas/comercio-core/internal/application/billing"
	"github.com/jhoicas/comercio-core/pkg/config"
)

var _ billing.ProviderClient = (*Client)(nil)

// Client es el cliente REST del proveedor externo de facturación. El core
// trata toda respuesta no exitosa (transporte, HTTP != 2xx o success=false)
// de forma uniforme como falla del proveedor.
type Client struct {
	http *resty.Client
}

// NewClient construye el cliente con la configuración global del proveedor.
// Las credenciales van por petición (cada empresa tiene las suyas).
func NewClient(cfg config.ProviderConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Accept", "application/json")
	return &Client{http: http}
}

// createInvoiceResponse cuerpo de respuesta del endpoint de emisión.
type createInvoiceResponse struct {
	Success   bool   `json:"success"`
	InvoiceID string `json:"invoice_id"`
	PDFURL    string `json:"pdf_url"`
	Error     string `json:"error"`
}

// CreateInvoice emite la factura en el proveedor.
func (c *Client) CreateInvoice(ctx context.Context, payload *billing.ProviderInvoicePayload) (*billing.ProviderInvoiceResult, error) {
	var out createInvoiceResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", payload.APIKey).
		SetHeader("X-Api-Secret", payload.APISecret).
		SetBody(payload).
		SetResult(&out).
		SetError(&out).
		Post("/v1/invoices")
	if err != nil {
		return nil, fmt.Errorf("llamar al proveedor: %w", err)
	}
	if resp.IsError() && out.Error == "" {
		out.Error = fmt.Sprintf("HTTP %d del proveedor", resp.StatusCode())
	}
	return &billing.ProviderInvoiceResult{
		Success:   resp.IsSuccess() && out.Success,
		InvoiceID: out.InvoiceID,
		PDFURL:    out.PDFURL,
		Error:     out.Error,
	}, nil
}

// pdfLinkResponse cuerpo de respuesta del endpoint de PDF.
type pdfLinkResponse struct {
	PDFURL string `json:"pdf_url"`
}

// GetInvoicePDFURL consulta la URL del PDF de una factura ya emitida.
func (c *Client) GetInvoicePDFURL(ctx context.Context, providerInvoiceID string) (string, error) {
	var out pdfLinkResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(fmt.Sprintf("/v1/invoices/%s/pdf", providerInvoiceID))
	if err != nil {
		return "", fmt.Errorf("consultar PDF: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("consultar PDF: HTTP %d", resp.StatusCode())
	}
	if out.PDFURL == "" {
		return "", fmt.Errorf("consultar PDF: el proveedor no devolvió URL")
	}
	return out.PDFURL, nil
}
