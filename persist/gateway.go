// Package persist provides whole-state persistence for the shop ledger.
package persist

import (
	"context"

	"shopledger/domain"
)

// Snapshot is the full durable state: the catalog's items and the order
// ledger, captured as values.
type Snapshot struct {
	Items  map[string]domain.Item
	Orders []domain.Order
}

// EmptySnapshot returns a snapshot with empty structures.
func EmptySnapshot() Snapshot {
	return Snapshot{Items: make(map[string]domain.Item), Orders: []domain.Order{}}
}

// Gateway is the durable storage contract. Load never fails: missing or
// unreadable state degrades to an empty snapshot. Save overwrites the
// entire blob.
type Gateway interface {
	Load(ctx context.Context) Snapshot
	Save(ctx context.Context, snap Snapshot) error
}
