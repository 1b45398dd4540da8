// Package shop implements the catalog store and order ledger behind a
// single shared lock.
package shop

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"shopledger/domain"
)

// Catalog owns the item map. It does no locking of its own: every call
// must run inside the critical section owned by Shop. Invariant upheld
// on every mutation: 0 <= available <= total.
type Catalog struct {
	items map[string]domain.Item
}

// NewCatalog constructs an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{items: make(map[string]domain.Item)}
}

// Upsert creates the item or overwrites an existing one. On overwrite
// the total is SET (not added), and availability is recomputed so units
// already sold stay sold: available = clamp(total - sold, 0, total).
// A CoverNone argument leaves an existing cover untouched.
func (c *Catalog) Upsert(id, title, owner string, totalQuantity int, price decimal.Decimal, cover domain.Cover) (domain.Item, error) {
	if id == "" {
		return domain.Item{}, domain.NewInvalidArgumentError("id", "cannot be empty", id)
	}
	if title == "" {
		return domain.Item{}, domain.NewInvalidArgumentError("title", "cannot be empty", title)
	}
	if totalQuantity <= 0 {
		return domain.Item{}, domain.NewInvalidArgumentError("total_quantity", "must be positive", totalQuantity)
	}
	if price.IsNegative() {
		return domain.Item{}, domain.NewInvalidArgumentError("price", "must be non-negative", price)
	}

	if existing, ok := c.items[id]; ok {
		sold := existing.Sold()
		existing.Title = title
		existing.Owner = owner
		existing.TotalQuantity = totalQuantity
		existing.AvailableQuantity = clamp(totalQuantity-sold, 0, totalQuantity)
		existing.UnitPrice = price
		if cover.Kind != domain.CoverNone {
			existing.Cover = cover
		}
		c.items[id] = existing
		return existing, nil
	}

	item := domain.Item{
		ID:                id,
		Title:             title,
		Owner:             owner,
		TotalQuantity:     totalQuantity,
		AvailableQuantity: totalQuantity,
		UnitPrice:         price,
		Cover:             cover,
	}
	c.items[id] = item
	return item, nil
}

// SetPrice updates the unit price of an existing item.
func (c *Catalog) SetPrice(id string, price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.NewInvalidArgumentError("price", "must be non-negative", price)
	}
	item, ok := c.items[id]
	if !ok {
		return domain.NewItemNotFoundError(id)
	}
	item.UnitPrice = price
	c.items[id] = item
	return nil
}

// AddStock raises total and available together, available clamped at
// the new total.
func (c *Catalog) AddStock(id string, qty int) error {
	if qty <= 0 {
		return domain.NewInvalidArgumentError("qty", "must be positive", qty)
	}
	item, ok := c.items[id]
	if !ok {
		return domain.NewItemNotFoundError(id)
	}
	item.TotalQuantity += qty
	item.AvailableQuantity = clamp(item.AvailableQuantity+qty, 0, item.TotalQuantity)
	c.items[id] = item
	return nil
}

// Reserve decrements availability for every line, all-or-nothing: every
// line is validated before any decrement, so a failing batch leaves the
// catalog exactly as it was.
func (c *Catalog) Reserve(items map[string]int) error {
	for _, id := range sortedKeys(items) {
		qty := items[id]
		item, ok := c.items[id]
		if !ok {
			return domain.NewItemNotFoundError(id)
		}
		if qty <= 0 {
			return domain.NewInvalidArgumentError("qty", "must be positive", qty)
		}
		if item.AvailableQuantity < qty {
			return domain.NewInsufficientStockError(id, qty, item.AvailableQuantity)
		}
	}
	for id, qty := range items {
		item := c.items[id]
		item.AvailableQuantity -= qty
		c.items[id] = item
	}
	return nil
}

// Release increments availability for each line, clamped at the item's
// total so a double release can never inflate stock. Unknown ids are
// skipped: an order must stay restockable after its item was removed.
func (c *Catalog) Release(items map[string]int) {
	for id, qty := range items {
		item, ok := c.items[id]
		if !ok || qty <= 0 {
			continue
		}
		item.AvailableQuantity = clamp(item.AvailableQuantity+qty, 0, item.TotalQuantity)
		c.items[id] = item
	}
}

// Remove deletes an item from the catalog. Historical orders keep their
// copied line items.
func (c *Catalog) Remove(id string) error {
	if _, ok := c.items[id]; !ok {
		return domain.NewItemNotFoundError(id)
	}
	delete(c.items, id)
	return nil
}

// Get returns a value snapshot of one item.
func (c *Catalog) Get(id string) (domain.Item, error) {
	item, ok := c.items[id]
	if !ok {
		return domain.Item{}, domain.NewItemNotFoundError(id)
	}
	return item, nil
}

// List returns value snapshots of all items, ordered by id.
func (c *Catalog) List() []domain.Item {
	out := make([]domain.Item, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Search returns items whose title or owner contains the query,
// case-insensitive, ordered by id.
func (c *Catalog) Search(query string) []domain.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Item, 0)
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Title), q) ||
			strings.Contains(strings.ToLower(item.Owner), q) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) snapshot() map[string]domain.Item {
	out := make(map[string]domain.Item, len(c.items))
	for id, item := range c.items {
		out[id] = item
	}
	return out
}

func (c *Catalog) replaceAll(items map[string]domain.Item) {
	c.items = make(map[string]domain.Item, len(items))
	for id, item := range items {
		item.AvailableQuantity = clamp(item.AvailableQuantity, 0, item.TotalQuantity)
		c.items[id] = item
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
