//go:build linux || darwin

package bump

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bumpkit/region"
)

// TestBumpAllocator_OverMapping runs the core scenario over real reserved
// pages: carve, write, stack round trip, growth past the committed span,
// and shrink on the last-block free.
func TestBumpAllocator_OverMapping(t *testing.T) {
	r, err := region.OpenMapping(4 << 20)
	require.NoError(t, err, "OpenMapping should not error")

	a, err := New(r, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	addrA, bufA := mustAlloc(t, a, 512, 8)
	for i := range bufA {
		bufA[i] = byte(i)
	}
	assert.Zero(t, addrA%8, "Address should honor the alignment")

	addrB, _ := mustAlloc(t, a, 256, 16)
	a.Free(addrB)
	addrC, _ := mustAlloc(t, a, 256, 16)
	assert.Equal(t, addrB, addrC, "Stack round trip should hold on real pages")

	// Three granules in one request forces commits past the first page.
	big := a.Granularity() * 3
	addrBig, bufBig := mustAlloc(t, a, big, 8)
	bufBig[0] = 0x5A
	bufBig[len(bufBig)-1] = 0xA5
	assert.Equal(t, byte(0x5A), bufBig[0], "Grown pages should hold writes")
	assert.Equal(t, byte(0xA5), bufBig[len(bufBig)-1], "Grown pages should hold writes")

	for i := range bufA {
		require.Equal(t, byte(i), bufA[i], "Early block should survive growth")
	}

	foot := a.Footprint()
	a.Free(addrBig)
	assert.Less(t, a.Footprint(), foot, "Freeing the big block should shrink the region")
}

// TestBumpAllocator_OverBreak runs the stack round trip over the real
// program break. Skips where the platform or the sandbox withholds brk.
func TestBumpAllocator_OverBreak(t *testing.T) {
	r, err := region.OpenBreak()
	if errors.Is(err, region.ErrUnsupported) {
		t.Skip("program break not available on this platform")
	}
	require.NoError(t, err, "OpenBreak should capture the break")

	a, err := New(r, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	addr, buf, err := a.Alloc(Layout{Size: 4096, Align: 8})
	if errors.Is(err, ErrOutOfMemory) {
		t.Skip("environment does not permit moving the program break")
	}
	require.NoError(t, err)

	buf[0] = 0xEE
	buf[4095] = 0x11
	assert.Equal(t, byte(0xEE), buf[0], "Break-backed block should hold writes")
	assert.Equal(t, byte(0x11), buf[4095], "Break-backed block should hold writes")

	a.Free(addr)
	assert.Zero(t, a.Used(), "Frontier should retract to the start")

	again, _, err := a.Alloc(Layout{Size: 4096, Align: 8})
	require.NoError(t, err)
	assert.Equal(t, addr, again, "Round trip should land on the same break address")
}
