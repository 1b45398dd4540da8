package shop

import (
	"time"

	"github.com/shopspring/decimal"

	"shopledger/domain"
)

// Ledger owns the order list: append-only, with mutable status. Like
// Catalog it relies on Shop for synchronization. Orders hold copied
// line items, never live references into the catalog.
type Ledger struct {
	orders []domain.Order
	index  map[string]int
	nextID func() string
	now    func() time.Time
}

// NewLedger constructs an empty Ledger. Order ids come from the
// injected generator.
func NewLedger(nextID func() string) *Ledger {
	return &Ledger{
		index:  make(map[string]int),
		nextID: nextID,
		now:    time.Now,
	}
}

// CreateOrder reserves every line through the catalog and appends a
// PENDING_PAYMENT order. The total is a snapshot of current unit prices;
// it is never recomputed. On reservation failure nothing is appended.
func (l *Ledger) CreateOrder(customer, userID string, items map[string]int, cat *Catalog) (domain.Order, error) {
	if customer == "" {
		return domain.Order{}, domain.NewInvalidArgumentError("customer", "cannot be empty", customer)
	}
	if len(items) == 0 {
		return domain.Order{}, domain.NewInvalidArgumentError("items", "cannot be empty", items)
	}
	if err := cat.Reserve(items); err != nil {
		return domain.Order{}, err
	}

	total := decimal.Zero
	lines := make(map[string]int, len(items))
	for id, qty := range items {
		item, err := cat.Get(id)
		if err != nil {
			// unreachable after a successful reserve; restore stock
			cat.Release(lines)
			return domain.Order{}, err
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(qty))))
		lines[id] = qty
	}

	order := domain.Order{
		ID:       l.nextID(),
		Time:     l.now(),
		Customer: customer,
		UserID:   userID,
		Items:    lines,
		Status:   domain.StatusPendingPayment,
		Total:    total,
	}
	l.index[order.ID] = len(l.orders)
	l.orders = append(l.orders, order)
	return order, nil
}

// MarkPaid moves an order from PENDING_PAYMENT to PAID.
func (l *Ledger) MarkPaid(id string) error {
	return l.transition(id, domain.StatusPaid)
}

// MarkDelivered moves an order from PAID to DELIVERED.
func (l *Ledger) MarkDelivered(id string) error {
	return l.transition(id, domain.StatusDelivered)
}

// CancelAndRestock cancels an order from PENDING_PAYMENT or PAID,
// releasing its line items back to the catalog. The transition guard
// makes it restock exactly once: a second call fails before any release.
func (l *Ledger) CancelAndRestock(id string, cat *Catalog) error {
	i, ok := l.index[id]
	if !ok {
		return domain.NewOrderNotFoundError(id)
	}
	order := l.orders[i]
	if !order.Status.CanTransitionTo(domain.StatusCancelledRestocked) {
		return domain.NewInvalidTransitionError(id, order.Status, domain.StatusCancelledRestocked)
	}
	cat.Release(order.Items)
	l.orders[i].Status = domain.StatusCancelledRestocked
	return nil
}

// SetNote attaches an informational note; allowed in any state.
func (l *Ledger) SetNote(id, note string) error {
	i, ok := l.index[id]
	if !ok {
		return domain.NewOrderNotFoundError(id)
	}
	l.orders[i].AdminNote = note
	return nil
}

// Find returns a value snapshot of one order.
func (l *Ledger) Find(id string) (domain.Order, error) {
	i, ok := l.index[id]
	if !ok {
		return domain.Order{}, domain.NewOrderNotFoundError(id)
	}
	order := l.orders[i]
	order.Items = order.CloneItems()
	return order, nil
}

// List returns value snapshots of all orders in creation order.
func (l *Ledger) List() []domain.Order {
	out := make([]domain.Order, 0, len(l.orders))
	for _, order := range l.orders {
		order.Items = order.CloneItems()
		out = append(out, order)
	}
	return out
}

// ListForCustomer returns the orders placed by one customer.
func (l *Ledger) ListForCustomer(customer string) []domain.Order {
	out := make([]domain.Order, 0)
	for _, order := range l.orders {
		if order.Customer != customer {
			continue
		}
		order.Items = order.CloneItems()
		out = append(out, order)
	}
	return out
}

func (l *Ledger) transition(id string, next domain.OrderStatus) error {
	i, ok := l.index[id]
	if !ok {
		return domain.NewOrderNotFoundError(id)
	}
	cur := l.orders[i].Status
	if !cur.CanTransitionTo(next) {
		return domain.NewInvalidTransitionError(id, cur, next)
	}
	l.orders[i].Status = next
	return nil
}

func (l *Ledger) snapshot() []domain.Order {
	return l.List()
}

func (l *Ledger) replaceAll(orders []domain.Order) {
	l.orders = make([]domain.Order, 0, len(orders))
	l.index = make(map[string]int, len(orders))
	for _, order := range orders {
		order.Items = order.CloneItems()
		l.index[order.ID] = len(l.orders)
		l.orders = append(l.orders, order)
	}
}
