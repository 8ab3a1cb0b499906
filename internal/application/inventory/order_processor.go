package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/comercio-core/internal/domain"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
	"github.com/jhoicas/comercio-core/pkg/logger"
)

// OrderStockProcessor consume las líneas de una orden, expande componentes y
// lleva el Stock Ledger a descontar (venta) o reponer (devolución) saldos.
// Cada movimiento de componente va en su propia transacción: un error en uno
// no aborta el lote, se acumula en Errors y se sigue con el siguiente.
type OrderStockProcessor struct {
	recorder  MovementRecorder
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	log       *logger.Logger
}

// NewOrderStockProcessor construye el procesador.
func NewOrderStockProcessor(
	recorder MovementRecorder,
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	log *logger.Logger,
) *OrderStockProcessor {
	return &OrderStockProcessor{recorder: recorder, orderRepo: orderRepo, itemRepo: itemRepo, log: log}
}

// StockProcessResult resultado agregado del procesamiento de una orden.
// Errors lleva mensajes legibles por línea/componente fallido; el caller decide
// si el paso completo se considera fallido inspeccionando este arreglo.
type StockProcessResult struct {
	ProcessedCount int
	Errors         []string
	Movements      []*entity.StockMovement
}

// ProcessOutboundForOrder descuenta inventario por las líneas de la orden
// (movimientos OUT referenciando orden y factura).
func (p *OrderStockProcessor) ProcessOutboundForOrder(ctx context.Context, orderID, invoiceID string) (*StockProcessResult, error) {
	return p.process(ctx, orderID, entity.MovementKindOUT, invoiceID, "")
}

// ProcessInboundForReturn repone inventario por una devolución (movimientos IN
// con referencia al evento de devolución).
func (p *OrderStockProcessor) ProcessInboundForReturn(ctx context.Context, orderID, returnRef string) (*StockProcessResult, error) {
	return p.process(ctx, orderID, entity.MovementKindIN, "", returnRef)
}

func (p *OrderStockProcessor) process(ctx context.Context, orderID, kind, invoiceID, reference string) (*StockProcessResult, error) {
	order, err := p.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	lines, err := p.orderRepo.ListLineItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Una sola consulta para todos los SKUs de la orden
	skus := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.SKU != "" {
			skus = append(skus, line.SKU)
		}
	}
	itemsBySKU := make(map[string]*entity.Item, len(skus))
	if len(skus) > 0 {
		items, err := p.itemRepo.ListBySKUs(ctx, skus)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			itemsBySKU[item.SKU] = item
		}
	}

	result := &StockProcessResult{}
	for _, line := range lines {
		item, ok := itemsBySKU[line.SKU]
		if line.SKU == "" || !ok {
			// Línea sin SKU resoluble: se salta, no es falla dura
			if p.log != nil {
				p.log.Debug().Str("order_id", orderID).Str("line_id", line.ID).
					Str("sku", line.SKU).Msg("línea sin SKU resoluble, se omite")
			}
			continue
		}

		var components []entity.ItemComponent
		if item.IsComposite {
			components, err = p.itemRepo.GetComponents(ctx, item.ID)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: cargar receta: %v", item.SKU, err))
				continue
			}
		}

		for _, comp := range ResolveEffectiveComponents(item, components) {
			total := comp.Multiplier.Mul(line.Quantity)
			movement, err := p.recorder.RecordMovement(ctx, MovementInput{
				ItemID:    comp.ItemID,
				Kind:      kind,
				Quantity:  total,
				OrderID:   orderID,
				InvoiceID: invoiceID,
				Reference: reference,
			})
			if err != nil {
				// Best-effort: se acumula el error y se continúa con el resto
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.SKU, err))
				continue
			}
			result.Movements = append(result.Movements, movement)
			result.ProcessedCount++
		}
	}
	return result, nil
}
