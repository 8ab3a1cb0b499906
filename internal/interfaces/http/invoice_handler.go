package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/comercio-core/internal/application/billing"
	"github.com/jhoicas/comercio-core/internal/application/dto"
	"github.com/jhoicas/comercio-core/internal/domain"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	issuer    *billing.InvoiceIssuer
	sequences *billing.SequenceAllocator
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(issuer *billing.InvoiceIssuer, sequences *billing.SequenceAllocator) *InvoiceHandler {
	return &InvoiceHandler{issuer: issuer, sequences: sequences}
}

// IssueForOrder emite la factura de una orden.
// POST /api/orders/:id/invoice
func (h *InvoiceHandler) IssueForOrder(c *fiber.Ctx) error {
	result := h.issuer.IssueInvoiceForOrder(c.Context(), c.Params("id"))
	status := fiber.StatusOK
	if !result.Success {
		// El orquestador nunca lanza: el error viene como texto legible
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(toIssueResponse(result))
}

// IssueBatch emite facturas para varias órdenes en secuencia.
// POST /api/invoices/batch
func (h *InvoiceHandler) IssueBatch(c *fiber.Ctx) error {
	var in dto.BatchIssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.OrderIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_ids requerido"})
	}
	batch := h.issuer.IssueInvoicesForOrders(c.Context(), in.OrderIDs)
	out := dto.BatchIssueResponse{
		Issued:  batch.Issued,
		Failed:  batch.Failed,
		Results: make([]dto.IssueInvoiceResponse, 0, len(batch.Results)),
	}
	for _, r := range batch.Results {
		out.Results = append(out.Results, toIssueResponse(r))
	}
	return c.JSON(out)
}

// PreviewSequence devuelve el próximo número de una serie sin mutar estado.
// GET /api/sequences/:id/preview
func (h *InvoiceHandler) PreviewSequence(c *fiber.Ctx) error {
	alloc, err := h.sequences.PreviewNext(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSequenceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SequencePreviewResponse{
		SequenceID: alloc.SequenceID,
		Prefix:     alloc.Prefix,
		Number:     alloc.Number,
		Formatted:  alloc.Formatted,
	})
}

func toIssueResponse(r *billing.IssueResult) dto.IssueInvoiceResponse {
	return dto.IssueInvoiceResponse{
		OrderID:       r.OrderID,
		Success:       r.Success,
		InvoiceNumber: r.InvoiceNumber,
		InvoiceSeries: r.InvoiceSeries,
		CompanyID:     r.CompanyID,
		Error:         r.Error,
	}
}
