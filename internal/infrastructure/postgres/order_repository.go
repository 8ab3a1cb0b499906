package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo lecturas de órdenes más la actualización del estado de facturación
// (lo único que el core escribe en órdenes).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene una orden por ID (nil si no existe).
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, store_id, order_number, status, financial_status,
		       billing_company_id, invoiced_by, intercompany, total, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	var billingCompanyID, invoicedBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.StoreID, &o.OrderNumber, &o.Status, &o.FinancialStatus,
		&billingCompanyID, &invoicedBy, &o.Intercompany, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if billingCompanyID != nil {
		o.BillingCompanyID = *billingCompanyID
	}
	if invoicedBy != nil {
		o.InvoicedBy = *invoicedBy
	}
	return &o, nil
}

// ListLineItems lista las líneas de la orden. SKU puede venir NULL (producto
// no mapeado desde el canal); se devuelve como cadena vacía.
func (r *OrderRepo) ListLineItems(ctx context.Context, orderID string) ([]*entity.OrderLineItem, error) {
	query := `
		SELECT id, order_id, sku, name, quantity, unit_price
		FROM order_line_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLineItem
	for rows.Next() {
		var li entity.OrderLineItem
		var sku *string
		if err := rows.Scan(&li.ID, &li.OrderID, &sku, &li.Name, &li.Quantity, &li.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		if sku != nil {
			li.SKU = *sku
		}
		list = append(list, &li)
	}
	return list, rows.Err()
}

// UpdateInvoicing actualiza estado, empresa facturadora y marca intercompany.
func (r *OrderRepo) UpdateInvoicing(ctx context.Context, orderID, status, invoicedBy string, intercompany bool) error {
	query := `
		UPDATE orders
		SET status = $2, invoiced_by = $3, intercompany = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, orderID, status, nullable(invoicedBy), intercompany)
	if err != nil {
		return fmt.Errorf("update order invoicing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update order invoicing: orden %s no existe", orderID)
	}
	return nil
}

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo lectura de tiendas (para resolver la empresa facturadora por defecto).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// GetByID obtiene una tienda por ID (nil si no existe).
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	query := `SELECT id, name, company_id FROM stores WHERE id = $1`
	var s entity.Store
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo lectura del traslado de bodega previo a facturar.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// GetByOrderID obtiene el traslado asociado a la orden (nil si no hay).
func (r *StockTransferRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.StockTransfer, error) {
	query := `SELECT id, order_id, status, created_at FROM stock_transfers WHERE order_id = $1`
	var t entity.StockTransfer
	err := r.q.QueryRow(ctx, query, orderID).Scan(&t.ID, &t.OrderID, &t.Status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transfer: %w", err)
	}
	return &t, nil
}
