package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/comercio-core/internal/domain"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, order_id, company_id, sequence_id, prefix, number, formatted_number,
		status, provider_invoice_id, pdf_url, payment_status, paid_amount, error_message,
		created_at, updated_at, deleted_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var providerID, pdfURL, errorMessage *string
	err := row.Scan(&inv.ID, &inv.OrderID, &inv.CompanyID, &inv.SequenceID, &inv.Prefix,
		&inv.Number, &inv.FormattedNumber, &inv.Status, &providerID, &pdfURL,
		&inv.PaymentStatus, &inv.PaidAmount, &errorMessage,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if providerID != nil {
		inv.ProviderInvoiceID = *providerID
	}
	if pdfURL != nil {
		inv.PDFURL = *pdfURL
	}
	if errorMessage != nil {
		inv.ErrorMessage = *errorMessage
	}
	return &inv, nil
}

// GetByID obtiene una factura por ID (nil si no existe).
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByOrderID devuelve la factura vigente (no soft-deleted) de la orden, o nil.
func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id = $1 AND deleted_at IS NULL`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, fmt.Errorf("get invoice by order: %w", err)
	}
	return inv, nil
}

// UpsertByOrder inserta o actualiza la factura de la orden (clave order_id).
func (r *InvoiceRepo) UpsertByOrder(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (order_id) WHERE deleted_at IS NULL
		DO UPDATE SET
			company_id = EXCLUDED.company_id,
			sequence_id = EXCLUDED.sequence_id,
			prefix = EXCLUDED.prefix,
			number = EXCLUDED.number,
			formatted_number = EXCLUDED.formatted_number,
			status = EXCLUDED.status,
			provider_invoice_id = EXCLUDED.provider_invoice_id,
			pdf_url = EXCLUDED.pdf_url,
			payment_status = EXCLUDED.payment_status,
			paid_amount = EXCLUDED.paid_amount,
			error_message = EXCLUDED.error_message,
			updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.OrderID, inv.CompanyID, inv.SequenceID, inv.Prefix,
		inv.Number, inv.FormattedNumber, inv.Status, nullable(inv.ProviderInvoiceID),
		nullable(inv.PDFURL), inv.PaymentStatus, inv.PaidAmount, nullable(inv.ErrorMessage),
		inv.CreatedAt, inv.UpdatedAt, inv.DeletedAt,
	)
	if err != nil {
		// El conflicto por order_id lo resuelve el DO UPDATE; si aun así hay
		// violación única es el número de serie ya usado por otra factura
		if isUniqueViolation(err) {
			return fmt.Errorf("upsert invoice: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("upsert invoice: %w", err)
	}
	return nil
}
