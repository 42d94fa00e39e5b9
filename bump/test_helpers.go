package bump

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bumpkit/region"
)

// newTestAllocator creates an allocator over a fresh Sim region so every
// test owns private, deterministic memory. A small granularity keeps growth
// and shrink observable without page-sized numbers. Close runs via
// t.Cleanup.
func newTestAllocator(t testing.TB, capacity, granularity uintptr) (*BumpAllocator, *region.Sim) {
	t.Helper()

	r, err := region.NewSim(capacity)
	require.NoError(t, err, "failed to create sim region")

	a, err := New(r, &Config{Granularity: granularity})
	require.NoError(t, err, "failed to create allocator")

	t.Cleanup(func() { _ = a.Close() })

	return a, r
}

// mustAlloc allocates or fails the test.
func mustAlloc(t testing.TB, a *BumpAllocator, size, alignment uintptr) (uintptr, []byte) {
	t.Helper()

	addr, block, err := a.Alloc(Layout{Size: size, Align: alignment})
	require.NoError(t, err, "Alloc(%d, %d) should succeed", size, alignment)
	require.NotZero(t, addr, "Alloc should return a real address")
	require.Len(t, block, int(size), "Block view should cover exactly the block")

	return addr, block
}
