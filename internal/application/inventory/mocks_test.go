package inventory

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/comercio-core/internal/domain/entity"
	"github.com/jhoicas/comercio-core/internal/domain/repository"
)

// Fakes en memoria de los puertos del ledger para pruebas de casos de uso.

type fakeItemRepo struct {
	mu         sync.Mutex
	items      map[string]*entity.Item // por ID
	components map[string][]entity.ItemComponent
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{
		items:      make(map[string]*entity.Item),
		components: make(map[string][]entity.ItemComponent),
	}
	for _, it := range items {
		copia := *it
		r.items[it.ID] = &copia
	}
	return r
}

func (r *fakeItemRepo) setComponents(itemID string, comps []entity.ItemComponent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[itemID] = comps
}

func (r *fakeItemRepo) balance(itemID string) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[itemID].CurrentBalance
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copia := *it
	return &copia, nil
}

func (r *fakeItemRepo) GetBySKU(_ context.Context, sku string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.SKU == sku {
			copia := *it
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeItemRepo) ListBySKUs(_ context.Context, skus []string) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Item
	for _, sku := range skus {
		for _, it := range r.items {
			if it.SKU == sku {
				copia := *it
				list = append(list, &copia)
			}
		}
	}
	return list, nil
}

func (r *fakeItemRepo) GetComponents(_ context.Context, itemID string) ([]entity.ItemComponent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.components[itemID], nil
}

func (r *fakeItemRepo) UpdateBalance(_ context.Context, id string, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return errors.New("ítem no existe")
	}
	it.CurrentBalance = balance
	return nil
}

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copia := *m
	r.movements = append(r.movements, &copia)
	return nil
}

func (r *fakeMovementRepo) ListByItem(_ context.Context, itemID string, _, _ int) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.StockMovement
	for _, m := range r.movements {
		if m.ItemID == itemID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.StockMovement
	for _, m := range r.movements {
		if m.OrderID == orderID {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.movements)
}

type fakeLevelRepo struct {
	mu         sync.Mutex
	levels     map[string]*entity.InventoryLevel
	failUpsert bool
}

func newFakeLevelRepo() *fakeLevelRepo {
	return &fakeLevelRepo{levels: make(map[string]*entity.InventoryLevel)}
}

func (r *fakeLevelRepo) Get(_ context.Context, sku string) (*entity.InventoryLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lv, ok := r.levels[sku]
	if !ok {
		return nil, nil
	}
	copia := *lv
	return &copia, nil
}

func (r *fakeLevelRepo) Upsert(_ context.Context, level *entity.InventoryLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpsert {
		return errors.New("espejo no disponible")
	}
	copia := *level
	r.levels[level.SKU] = &copia
	return nil
}

// fakeTxRunner ejecuta el callback con los fakes; el mutex emula el bloqueo
// de fila serializando las "transacciones".
type fakeTxRunner struct {
	mu       sync.Mutex
	itemRepo *fakeItemRepo
	movRepo  *fakeMovementRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.itemRepo, r.movRepo)
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
	lines  map[string][]*entity.OrderLineItem
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
	return nil
}
