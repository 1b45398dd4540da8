package persist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryGateway_LoadBeforeSave(t *testing.T) {
	g := NewMemoryGateway()
	snap := g.Load(context.Background())
	require.NotNil(t, snap.Items)
	require.Empty(t, snap.Items)
	require.Empty(t, snap.Orders)
}

func TestMemoryGateway_SaveLoad(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	want := sampleSnapshot()
	require.NoError(t, g.Save(ctx, want))
	requireSnapshotEqual(t, want, g.Load(ctx))

	// a later save replaces the whole state
	require.NoError(t, g.Save(ctx, EmptySnapshot()))
	require.Empty(t, g.Load(ctx).Items)
}

func TestMemoryGateway_SaveCancelledContext(t *testing.T) {
	g := NewMemoryGateway()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, g.Save(ctx, EmptySnapshot()))
}
