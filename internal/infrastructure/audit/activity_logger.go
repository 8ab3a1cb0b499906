package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/comercio-core/internal/application/billing"
	"github.com/jhoicas/comercio-core/internal/infrastructure/postgres"
	"github.com/jhoicas/comercio-core/pkg/logger"
)

var _ billing.ActivityLogger = (*ActivityLogger)(nil)

// ActivityLogger registra eventos de facturación en activity_logs y en el log
// estructurado. Es fire-and-forget: cualquier falla se registra y se traga,
// nunca afecta la emisión que la originó.
type ActivityLogger struct {
	q   postgres.Querier
	log *logger.Logger
}

// NewActivityLogger construye el logger de actividad.
func NewActivityLogger(q postgres.Querier, log *logger.Logger) *ActivityLogger {
	return &ActivityLogger{q: q, log: log}
}

// InvoiceIssued anota una factura emitida.
func (a *ActivityLogger) InvoiceIssued(ctx context.Context, orderID, invoiceNumber, companyID string) {
	a.log.Info().
		Str("order_id", orderID).
		Str("invoice_number", invoiceNumber).
		Str("company_id", companyID).
		Msg("factura emitida")

	if a.q == nil {
		return
	}
	query := `
		INSERT INTO activity_logs (id, event, order_id, detail, created_at)
		VALUES ($1, 'invoice_issued', $2, $3, $4)`
	if _, err := a.q.Exec(ctx, query, uuid.New().String(), orderID, invoiceNumber, time.Now()); err != nil {
		a.log.Warn().Err(err).Str("order_id", orderID).Msg("no se pudo guardar el registro de actividad")
	}
}
