package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/comercio-core/internal/application/dto"
	"github.com/jhoicas/comercio-core/internal/application/inventory"
	"github.com/jhoicas/comercio-core/internal/domain"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del ledger de inventario (protegido).
type InventoryHandler struct {
	ledger    *inventory.StockLedger
	processor *inventory.OrderStockProcessor
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.StockLedger, processor *inventory.OrderStockProcessor) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, processor: processor}
}

// RegisterMovement registra un movimiento manual (entrada, salida o ajuste).
// POST /api/inventory/movements
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.ledger.RecordMovement(c.Context(), inventory.MovementInput{
		ItemID:    in.ItemID,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
		CreatedBy: GetUserID(c),
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// ProcessOrderStock descuenta inventario por las líneas de una orden.
// POST /api/orders/:id/stock/outbound
func (h *InventoryHandler) ProcessOrderStock(c *fiber.Ctx) error {
	var in dto.ProcessOrderStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.processor.ProcessOutboundForOrder(c.Context(), c.Params("id"), in.InvoiceID)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(toProcessResponse(result))
}

// ProcessReturn repone inventario por una devolución.
// POST /api/orders/:id/stock/inbound
func (h *InventoryHandler) ProcessReturn(c *fiber.Ctx) error {
	var in dto.ProcessReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.processor.ProcessInboundForReturn(c.Context(), c.Params("id"), in.ReturnRef)
	if err != nil {
		return movementError(c, err)
	}
	return c.JSON(toProcessResponse(result))
}

func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case domain.IsInsufficientStock(err):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ItemID:        m.ItemID,
		Kind:          m.Kind,
		QuantityDelta: m.QuantityDelta,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
	}
}

func toProcessResponse(r *inventory.StockProcessResult) dto.StockProcessResponse {
	out := dto.StockProcessResponse{
		ProcessedCount: r.ProcessedCount,
		Errors:         r.Errors,
		Movements:      make([]dto.MovementResponse, 0, len(r.Movements)),
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	for _, m := range r.Movements {
		out.Movements = append(out.Movements, toMovementResponse(m))
	}
	return out
}
