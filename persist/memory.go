package persist

import (
	"context"
	"sync"
)

// MemoryGateway keeps the last saved snapshot in memory. It is the
// default backend and keeps the ledger usable without any file on disk,
// at the cost of losing state on exit.
type MemoryGateway struct {
	mu   sync.Mutex
	snap Snapshot
	set  bool
}

// compile-time assertion that MemoryGateway implements Gateway
var _ Gateway = (*MemoryGateway)(nil)

// NewMemoryGateway constructs an empty MemoryGateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

// Load returns the last saved snapshot, or an empty one.
func (g *MemoryGateway) Load(ctx context.Context) Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.set {
		return EmptySnapshot()
	}
	return g.snap
}

// Save stores the snapshot.
func (g *MemoryGateway) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.snap = snap
	g.set = true
	return nil
}
