package billing

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

// Fakes en memoria de los puertos de facturación para pruebas de casos de uso.

type fakeSeqRepo struct {
	mu        sync.Mutex
	sequences map[string]*entity.InvoiceSequence
}

func newFakeSeqRepo(seqs ...*entity.InvoiceSequence) *fakeSeqRepo {
	r := &fakeSeqRepo{sequences: make(map[string]*entity.InvoiceSequence)}
	for _, s := range seqs {
		copia := *s
		r.sequences[s.ID] = &copia
	}
	return r
}

func (r *fakeSeqRepo) current(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sequences[id].CurrentNumber
}

func (r *fakeSeqRepo) GetByID(_ context.Context, id string) (*entity.InvoiceSequence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sequences[id]
	if !ok {
		return nil, nil
	}
	copia := *s
	return &copia, nil
}

func (r *fakeSeqRepo) GetForUpdate(ctx context.Context, id string) (*entity.InvoiceSequence, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSeqRepo) UpdateCurrentNumber(_ context.Context, id string, current int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sequences[id]
	if !ok {
		return errors.New("serie no existe")
	}
	s.CurrentNumber = current
	return nil
}

func (r *fakeSeqRepo) GetDefaultActiveByCompany(_ context.Context, companyID string) (*entity.InvoiceSequence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sequences {
		if s.CompanyID == companyID && s.IsActive && s.IsDefault {
			copia := *s
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeSeqRepo) GetFirstActiveByCompany(_ context.Context, companyID string) (*entity.InvoiceSequence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var first *entity.InvoiceSequence
	for _, s := range r.sequences {
		if s.CompanyID != companyID || !s.IsActive {
			continue
		}
		if first == nil || s.CreatedAt.Before(first.CreatedAt) {
			first = s
		}
	}
	if first == nil {
		return nil, nil
	}
	copia := *first
	return &copia, nil
}

func (r *fakeSeqRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.InvoiceSequence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.InvoiceSequence
	for _, s := range r.sequences {
		if s.CompanyID == companyID {
			copia := *s
			list = append(list, &copia)
		}
	}
	return list, nil
}

// fakeSeqTxRunner serializa las "transacciones" con un mutex, emulando el
// bloqueo de fila del FOR UPDATE sobre la serie.
type fakeSeqTxRunner struct {
	mu      sync.Mutex
	seqRepo *fakeSeqRepo
}

func (r *fakeSeqTxRunner) RunSequence(_ context.Context, fn func(seqRepo repository.InvoiceSequenceRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.seqRepo)
}

type fakeOrderRepo struct {
	orders          map[string]*entity.Order
	lines           map[string][]*entity.OrderLineItem
	invoicingCalls  int
	lastStatus      string
	lastInvoicedBy  string
	lastIntercompny bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: make(map[string]*entity.Order),
		lines:  make(map[string][]*entity.OrderLineItem),
	}
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copia := *o
	return &copia, nil
}

func (r *fakeOrderRepo) ListLineItems(_ context.Context, orderID string) ([]*entity.OrderLineItem, error) {
	return r.lines[orderID], nil
}

func (r *fakeOrderRepo) UpdateInvoicing(_ context.Context, orderID, status, invoicedBy string, intercompany bool) error {
	o, ok := r.orders[orderID]
	if !ok {
		return errors.New("orden no existe")
	}
	o.Status = status
	o.InvoicedBy = invoicedBy
	o.Intercompany = intercompany
	r.invoicingCalls++
	r.lastStatus = status
	r.lastInvoicedBy = invoicedBy
	r.lastIntercompny = intercompany
	return nil
}

type fakeStoreRepo struct {
	stores map[string]*entity.Store
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	copia := *s
	return &copia, nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

type fakeTransferRepo struct {
	transfers map[string]*entity.StockTransfer // por orderID
}

func (r *fakeTransferRepo) GetByOrderID(_ context.Context, orderID string) (*entity.StockTransfer, error) {
	t, ok := r.transfers[orderID]
	if !ok {
		return nil, nil
	}
	copia := *t
	return &copia, nil
}

type fakeInvoiceRepo struct {
	byOrder map[string]*entity.Invoice
	upserts int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byOrder: make(map[string]*entity.Invoice)}
}

func (r *fakeInvoiceRepo) GetByOrderID(_ context.Context, orderID string) (*entity.Invoice, error) {
	inv, ok := r.byOrder[orderID]
	if !ok {
		return nil, nil
	}
	copia := *inv
	return &copia, nil
}

func (r *fakeInvoiceRepo) UpsertByOrder(_ context.Context, invoice *entity.Invoice) error {
	copia := *invoice
	r.byOrder[invoice.OrderID] = &copia
	r.upserts++
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	for _, inv := range r.byOrder {
		if inv.ID == id {
			copia := *inv
			return &copia, nil
		}
	}
	return nil, nil
}

// fakeProvider responde según el guion configurado y registra los payloads.
type fakeProvider struct {
	result   *ProviderInvoiceResult
	err      error
	payloads []*ProviderInvoicePayload
	pdfURL   string
	pdfErr   error
	pdfCalls int
}

func (p *fakeProvider) CreateInvoice(_ context.Context, payload *ProviderInvoicePayload) (*ProviderInvoiceResult, error) {
	p.payloads = append(p.payloads, payload)
	return p.result, p.err
}

func (p *fakeProvider) GetInvoicePDFURL(_ context.Context, _ string) (string, error) {
	p.pdfCalls++
	return p.pdfURL, p.pdfErr
}

type fakeAudit struct {
	calls []string // "orderID|número|empresa"
}

func (a *fakeAudit) InvoiceIssued(_ context.Context, orderID, invoiceNumber, companyID string) {
	a.calls = append(a.calls, orderID+"|"+invoiceNumber+"|"+companyID)
}
