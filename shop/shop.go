package shop

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"shopledger/domain"
	"shopledger/persist"
	"shopledger/util"
)

// Shop owns the Catalog and the Ledger behind one mutex. Order creation
// spans both (reserve stock + append order) and has to be seen as a
// single atomic unit, so there is exactly one lock for everything. Each
// mutation snapshots the state under the lock and persists it after
// unlock, keeping disk latency out of the critical section.
type Shop struct {
	mu      sync.Mutex
	catalog *Catalog
	ledger  *Ledger
	gateway persist.Gateway
	logger  *slog.Logger
}

// New constructs a Shop and restores its state from the gateway. The
// order-id sequence is seeded past the highest restored id.
func New(ctx context.Context, gw persist.Gateway, logger *slog.Logger) *Shop {
	if logger == nil {
		logger = slog.Default()
	}
	seq := util.NewSequence("ORD-")
	s := &Shop{
		catalog: NewCatalog(),
		ledger:  NewLedger(seq.Next),
		gateway: gw,
		logger:  logger,
	}

	snap := gw.Load(ctx)
	s.catalog.replaceAll(snap.Items)
	s.ledger.replaceAll(snap.Orders)
	for _, order := range snap.Orders {
		if n, ok := orderSeq(order.ID); ok {
			seq.Seed(n)
		}
	}
	logger.Info("state restored", "items", len(snap.Items), "orders", len(snap.Orders))
	return s
}

// orderSeq extracts the numeric suffix of an ORD- id.
func orderSeq(id string) (int64, bool) {
	rest, ok := strings.CutPrefix(id, "ORD-")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ---- catalog operations ----

// UpsertItem creates or overwrites a catalog item.
func (s *Shop) UpsertItem(ctx context.Context, id, title, owner string, totalQuantity int, price decimal.Decimal, cover domain.Cover) (domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return domain.Item{}, err
	}
	s.mu.Lock()
	item, err := s.catalog.Upsert(id, title, owner, totalQuantity, price, cover)
	if err != nil {
		s.mu.Unlock()
		return domain.Item{}, err
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return item, s.persist(ctx, snap)
}

// SetPrice updates an item's unit price.
func (s *Shop) SetPrice(ctx context.Context, id string, price decimal.Decimal) error {
	return s.mutate(ctx, func() error { return s.catalog.SetPrice(id, price) })
}

// AddStock raises an item's total and available counts together.
func (s *Shop) AddStock(ctx context.Context, id string, qty int) error {
	return s.mutate(ctx, func() error { return s.catalog.AddStock(id, qty) })
}

// Reserve atomically decrements availability for a batch of lines.
func (s *Shop) Reserve(ctx context.Context, items map[string]int) error {
	return s.mutate(ctx, func() error { return s.catalog.Reserve(items) })
}

// Release returns previously reserved units, clamped at each total.
func (s *Shop) Release(ctx context.Context, items map[string]int) error {
	return s.mutate(ctx, func() error { s.catalog.Release(items); return nil })
}

// RemoveItem deletes an item from the catalog.
func (s *Shop) RemoveItem(ctx context.Context, id string) error {
	return s.mutate(ctx, func() error { return s.catalog.Remove(id) })
}

// GetItem returns a value snapshot of one item.
func (s *Shop) GetItem(ctx context.Context, id string) (domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return domain.Item{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Get(id)
}

// ListItems returns all items ordered by id.
func (s *Shop) ListItems(ctx context.Context) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List(), nil
}

// SearchItems matches title or owner, case-insensitive.
func (s *Shop) SearchItems(ctx context.Context, query string) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Search(query), nil
}

// ---- ledger operations ----

// CreateOrder reserves stock and appends a PENDING_PAYMENT order in one
// critical section.
func (s *Shop) CreateOrder(ctx context.Context, customer, userID string, items map[string]int) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}
	s.mu.Lock()
	order, err := s.ledger.CreateOrder(customer, userID, items, s.catalog)
	if err != nil {
		s.mu.Unlock()
		return domain.Order{}, err
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return order, s.persist(ctx, snap)
}

// MarkPaid moves an order from PENDING_PAYMENT to PAID.
func (s *Shop) MarkPaid(ctx context.Context, id string) error {
	return s.mutate(ctx, func() error { return s.ledger.MarkPaid(id) })
}

// MarkDelivered moves an order from PAID to DELIVERED.
func (s *Shop) MarkDelivered(ctx context.Context, id string) error {
	return s.mutate(ctx, func() error { return s.ledger.MarkDelivered(id) })
}

// CancelOrder cancels an order and restocks its line items.
func (s *Shop) CancelOrder(ctx context.Context, id string) error {
	return s.mutate(ctx, func() error { return s.ledger.CancelAndRestock(id, s.catalog) })
}

// SetOrderNote attaches an informational note to an order.
func (s *Shop) SetOrderNote(ctx context.Context, id, note string) error {
	return s.mutate(ctx, func() error { return s.ledger.SetNote(id, note) })
}

// FindOrder returns a value snapshot of one order.
func (s *Shop) FindOrder(ctx context.Context, id string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Find(id)
}

// ListOrders returns all orders in creation order.
func (s *Shop) ListOrders(ctx context.Context) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.List(), nil
}

// ListOrdersForCustomer returns one customer's orders.
func (s *Shop) ListOrdersForCustomer(ctx context.Context, customer string) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.ListForCustomer(customer), nil
}

// ---- internals ----

// mutate runs op in the critical section and persists the resulting
// state. A failed op persists nothing.
func (s *Shop) mutate(ctx context.Context, op func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if err := op(); err != nil {
		s.mu.Unlock()
		return err
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	return s.persist(ctx, snap)
}

func (s *Shop) snapshotLocked() persist.Snapshot {
	return persist.Snapshot{
		Items:  s.catalog.snapshot(),
		Orders: s.ledger.snapshot(),
	}
}

func (s *Shop) persist(ctx context.Context, snap persist.Snapshot) error {
	if err := s.gateway.Save(ctx, snap); err != nil {
		s.logger.Error("state save failed", "error", err)
		return err
	}
	return nil
}
