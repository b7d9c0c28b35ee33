package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/segalloc/heap"
)

// newTestAllocator builds a ready-to-use Allocator over a freshly
// reserved arena, using cfg (or DefaultConfig if the zero value is
// passed).
func newTestAllocator(t *testing.T, cfg Config) *Allocator {
	t.Helper()
	if cfg == (Config{}) {
		cfg = DefaultConfig
	}
	arena, err := heap.NewSized(1 << 24)
	require.NoError(t, err)
	t.Cleanup(func() { _ = arena.Close() })

	a, err := New(arena, cfg)
	require.NoError(t, err)
	require.NoError(t, a.Init())
	return a
}

// assertInvariants runs CheckHeap and fails the test with its error if
// any invariant is violated.
func assertInvariants(t *testing.T, a *Allocator) {
	t.Helper()
	require.NoError(t, a.CheckHeap(false))
}
