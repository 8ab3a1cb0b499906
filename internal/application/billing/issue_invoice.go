package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
	"github.com/jhoicas/comercio-core/pkg/logger"
)

// InvoiceIssuer orquesta la emisión de la factura de una orden: resuelve
// empresa y serie, reserva el número, llama al proveedor externo y, si el
// proveedor falla, devuelve el número reservado (rollback del consecutivo).
// Toda falla sale como texto legible en el resultado, nunca como panic.
type InvoiceIssuer struct {
	orderRepo    repository.OrderRepository
	storeRepo    repository.StoreRepository
	companyRepo  repository.CompanyRepository
	transferRepo repository.StockTransferRepository
	invoiceRepo  repository.InvoiceRepository
	sequences    *SequenceAllocator
	provider     ProviderClient
	audit        ActivityLogger
	log          *logger.Logger
}

// NewInvoiceIssuer construye el orquestador.
func NewInvoiceIssuer(
	orderRepo repository.OrderRepository,
	storeRepo repository.StoreRepository,
	companyRepo repository.CompanyRepository,
	transferRepo repository.StockTransferRepository,
	invoiceRepo repository.InvoiceRepository,
	sequences *SequenceAllocator,
	provider ProviderClient,
	audit ActivityLogger,
	log *logger.Logger,
) *InvoiceIssuer {
	return &InvoiceIssuer{
		orderRepo:    orderRepo,
		storeRepo:    storeRepo,
		companyRepo:  companyRepo,
		transferRepo: transferRepo,
		invoiceRepo:  invoiceRepo,
		sequences:    sequences,
		provider:     provider,
		audit:        audit,
		log:          log,
	}
}

// IssueResult resultado de la emisión de una orden.
type IssueResult struct {
	OrderID       string
	Success       bool
	InvoiceNumber string
	InvoiceSeries string
	CompanyID     string
	Error         string
}

// BatchIssueResult agregado de IssueInvoicesForOrders.
type BatchIssueResult struct {
	Issued  int
	Failed  int
	Results []*IssueResult
}

func failResult(orderID, format string, args ...any) *IssueResult {
	return &IssueResult{OrderID: orderID, Error: fmt.Sprintf(format, args...)}
}

// IssueInvoiceForOrder emite la factura de una orden. Las guardas fallan rápido
// sin efectos; la única mutación previa a la confirmación del proveedor es la
// reserva del número, que se compensa con rollback si el proveedor falla.
// El resto de escrituras (factura, orden) ocurre solo tras la confirmación.
func (s *InvoiceIssuer) IssueInvoiceForOrder(ctx context.Context, orderID string) *IssueResult {
	// 1) Cargar orden y líneas
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return failResult(orderID, "cargar orden: %v", err)
	}
	if order == nil {
		return failResult(orderID, "orden no encontrada")
	}
	lines, err := s.orderRepo.ListLineItems(ctx, orderID)
	if err != nil {
		return failResult(orderID, "cargar líneas de la orden: %v", err)
	}

	// 2) Guardas: fallan rápido, sin efectos secundarios
	existing, err := s.invoiceRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return failResult(orderID, "consultar factura existente: %v", err)
	}
	if existing != nil && existing.Status == entity.InvoiceStatusIssued {
		return failResult(orderID, "la orden ya tiene factura emitida (%s)", existing.FormattedNumber)
	}
	transfer, err := s.transferRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return failResult(orderID, "consultar traslado de bodega: %v", err)
	}
	if transfer != nil && transfer.Status != entity.StockTransferCompleted {
		return failResult(orderID, "el traslado de bodega de la orden no está completado")
	}

	// 3) Empresa facturadora: override por orden > empresa por defecto de la tienda
	company, errMsg := s.resolveBillingCompany(ctx, order)
	if errMsg != "" {
		return failResult(orderID, "%s", errMsg)
	}
	if !company.HasProviderCredentials() {
		return failResult(orderID, "la empresa %s no tiene credenciales del proveedor de facturación", company.Name)
	}

	// 4) Serie de facturación de la empresa
	seq, err := s.sequences.ResolveForCompany(ctx, company.ID, company.DefaultSequenceID)
	if err != nil {
		return failResult(orderID, "resolver serie de facturación: %v", err)
	}
	if seq == nil {
		return failResult(orderID, "la empresa %s no tiene una serie de facturación activa", company.Name)
	}

	// 5) Reservar número: muta estado persistido ANTES de llamar al proveedor
	alloc, err := s.sequences.AllocateNext(ctx, seq.ID)
	if err != nil {
		return failResult(orderID, "asignar número de factura: %v", err)
	}
	if alloc.CorrectionApplied && s.log != nil {
		s.log.Warn().Str("sequence_id", seq.ID).Msg(alloc.CorrectionNote)
	}

	// 6) Payload y llamada al proveedor externo
	payload := s.buildPayload(order, lines, company, seq, alloc)
	res, err := s.provider.CreateInvoice(ctx, payload)
	if err != nil || res == nil || !res.Success {
		// 7) Compensación: devolver el número para que se reutilice
		if rbErr := s.sequences.Rollback(ctx, seq.ID, alloc.Number); rbErr != nil && s.log != nil {
			s.log.Error().Err(rbErr).Str("sequence_id", seq.ID).Int64("number", alloc.Number).
				Msg("no se pudo devolver el número de la serie")
		}
		msg := "el proveedor no respondió"
		if err != nil {
			msg = err.Error()
		} else if res != nil && res.Error != "" {
			msg = res.Error
		}
		return failResult(orderID, "emisión rechazada por el proveedor: %s", msg)
	}

	// 8) Confirmado: PDF best-effort, upsert de factura, actualización de la orden
	pdfURL := res.PDFURL
	if pdfURL == "" {
		url, pdfErr := s.provider.GetInvoicePDFURL(ctx, res.InvoiceID)
		if pdfErr != nil {
			if s.log != nil {
				s.log.Warn().Err(pdfErr).Str("order_id", orderID).Msg("no se pudo obtener el PDF de la factura")
			}
		} else {
			pdfURL = url
		}
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:                uuid.New().String(),
		OrderID:           orderID,
		CompanyID:         company.ID,
		SequenceID:        seq.ID,
		Prefix:            alloc.Prefix,
		Number:            alloc.Number,
		FormattedNumber:   alloc.Formatted,
		Status:            entity.InvoiceStatusIssued,
		ProviderInvoiceID: res.InvoiceID,
		PDFURL:            pdfURL,
		PaymentStatus:     paymentStatusFor(order),
		PaidAmount:        paidAmountFor(order),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.invoiceRepo.UpsertByOrder(ctx, invoice); err != nil {
		return failResult(orderID, "guardar factura: %v", err)
	}
	// Empresa no principal: la orden queda marcada para liquidación intercompany
	if err := s.orderRepo.UpdateInvoicing(ctx, orderID, "invoiced", company.ID, !company.IsPrimary); err != nil {
		return failResult(orderID, "actualizar orden facturada: %v", err)
	}
	if s.audit != nil {
		s.audit.InvoiceIssued(ctx, orderID, alloc.Formatted, company.ID)
	}

	return &IssueResult{
		OrderID:       orderID,
		Success:       true,
		InvoiceNumber: alloc.Formatted,
		InvoiceSeries: alloc.Prefix,
		CompanyID:     company.ID,
	}
}

// IssueInvoicesForOrders procesa órdenes en secuencia y agrega resultados.
// Cada orden es independiente: la falla de una no bloquea las siguientes.
// No hay reintentos automáticos.
func (s *InvoiceIssuer) IssueInvoicesForOrders(ctx context.Context, orderIDs []string) *BatchIssueResult {
	batch := &BatchIssueResult{Results: make([]*IssueResult, 0, len(orderIDs))}
	for _, id := range orderIDs {
		result := s.IssueInvoiceForOrder(ctx, id)
		batch.Results = append(batch.Results, result)
		if result.Success {
			batch.Issued++
		} else {
			batch.Failed++
		}
	}
	return batch
}

func (s *InvoiceIssuer) resolveBillingCompany(ctx context.Context, order *entity.Order) (*entity.Company, string) {
	companyID := order.BillingCompanyID
	if companyID == "" {
		store, err := s.storeRepo.GetByID(ctx, order.StoreID)
		if err != nil || store == nil {
			return nil, "no se pudo resolver la tienda de la orden"
		}
		companyID = store.CompanyID
	}
	if companyID == "" {
		return nil, "no hay empresa facturadora resoluble para la orden"
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil || company == nil {
		return nil, "no hay empresa facturadora resoluble para la orden"
	}
	return company, ""
}

func (s *InvoiceIssuer) buildPayload(
	order *entity.Order,
	lines []*entity.OrderLineItem,
	company *entity.Company,
	seq *entity.InvoiceSequence,
	alloc *Allocation,
) *ProviderInvoicePayload {
	payload := &ProviderInvoicePayload{
		OrderNumber:   order.OrderNumber,
		SeriesCode:    seq.ProviderSeriesCode,
		InvoiceNumber: alloc.Formatted,
		CompanyTaxID:  company.TaxID,
		APIKey:        company.ProviderAPIKey,
		APISecret:     company.ProviderAPISecret,
		Total:         order.Total,
	}
	for _, line := range lines {
		payload.Lines = append(payload.Lines, ProviderInvoiceLine{
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			VATRate:   company.VATRate,
		})
	}
	return payload
}

func paymentStatusFor(order *entity.Order) string {
	switch order.FinancialStatus {
	case entity.FinancialStatusPaid:
		return entity.PaymentStatusPaid
	case entity.FinancialStatusPartially:
		return entity.PaymentStatusPartial
	default:
		return entity.PaymentStatusUnpaid
	}
}

func paidAmountFor(order *entity.Order) decimal.Decimal {
	if order.FinancialStatus == entity.FinancialStatusPaid {
		return order.Total
	}
	return decimal.Zero
}
