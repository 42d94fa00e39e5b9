package bump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLayout tests constructor validation.
func TestNewLayout(t *testing.T) {
	l, err := NewLayout(24, 8)
	require.NoError(t, err, "valid layout should pass")
	assert.Equal(t, Layout{Size: 24, Align: 8}, l)

	_, err = NewLayout(0, 8)
	assert.ErrorIs(t, err, ErrBadSize, "zero size should be rejected")

	_, err = NewLayout(8, 0)
	assert.ErrorIs(t, err, ErrBadAlign, "zero alignment should be rejected")

	_, err = NewLayout(8, 12)
	assert.ErrorIs(t, err, ErrBadAlign, "non-power-of-two alignment should be rejected")
}

// TestLayoutOf tests that type layouts mirror the compiler's view.
func TestLayoutOf(t *testing.T) {
	l := LayoutOf[uint64]()
	assert.Equal(t, uintptr(8), l.Size)
	assert.Equal(t, uintptr(8), l.Align)

	l = LayoutOf[byte]()
	assert.Equal(t, uintptr(1), l.Size)
	assert.Equal(t, uintptr(1), l.Align)

	// Struct size carries trailing padding up to the alignment.
	type padded struct {
		a uint32
		b byte
	}
	l = LayoutOf[padded]()
	assert.Equal(t, uintptr(8), l.Size)
	assert.Equal(t, uintptr(4), l.Align)
}

// TestArrayOf tests array layouts, including the degenerate and saturating
// cases.
func TestArrayOf(t *testing.T) {
	l := ArrayOf[uint16](16)
	assert.Equal(t, uintptr(32), l.Size)
	assert.Equal(t, uintptr(2), l.Align)

	// A zero-length array fails layout validation downstream.
	l = ArrayOf[uint64](0)
	assert.ErrorIs(t, l.check(), ErrBadSize)

	// A product that would wrap saturates to an unsatisfiable size.
	l = ArrayOf[uint64](^uintptr(0)/8 + 2)
	assert.Equal(t, ^uintptr(0), l.Size, "overflowing product should saturate")
}

// TestArrayOf_Alloc tests an array layout end to end through the allocator.
func TestArrayOf_Alloc(t *testing.T) {
	a, _ := newTestAllocator(t, 4096, 64)

	addr, block, err := a.Alloc(ArrayOf[uint32](8))
	require.NoError(t, err)
	assert.Zero(t, addr%4, "Array should start on the element boundary")
	assert.Len(t, block, 32, "Block should cover all elements")
}
