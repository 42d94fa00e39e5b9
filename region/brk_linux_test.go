//go:build linux

package region

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBreak_GrowShrink tests moving the real program break. Sandboxes that
// pin the break refuse the first Grow; the test skips there instead of
// failing, since refusal is a property of the environment.
func TestBreak_GrowShrink(t *testing.T) {
	b, err := OpenBreak()
	require.NoError(t, err, "OpenBreak should capture the current break")

	start, end := b.Bounds()
	require.Equal(t, start, end, "Fresh region should be empty")

	prev, err := b.Grow(4096)
	if errors.Is(err, ErrGrowFail) {
		t.Skip("environment does not permit moving the program break")
	}
	require.NoError(t, err, "Grow should succeed")
	assert.Equal(t, start, prev, "First Grow should return the start")

	buf := unsafe.Slice((*byte)(unsafe.Pointer(prev)), 4096)
	buf[0] = 0x5A
	buf[4095] = 0xA5
	assert.Equal(t, byte(0x5A), buf[0], "Grown span should hold writes")
	assert.Equal(t, byte(0xA5), buf[4095], "Grown span should hold writes")

	require.NoError(t, b.Shrink(4096), "Shrink should hand the span back")
	_, end = b.Bounds()
	assert.Equal(t, start, end, "End should be back at the start")

	require.NoError(t, b.Release(), "Release should succeed")
	require.NoError(t, b.Release(), "Second Release should be a no-op")
}

// TestBreak_GrowZero tests that a zero-byte Grow never touches the break.
func TestBreak_GrowZero(t *testing.T) {
	b, err := OpenBreak()
	require.NoError(t, err)

	_, end := b.Bounds()
	prev, err := b.Grow(0)
	require.NoError(t, err, "Grow(0) should succeed without a syscall")
	assert.Equal(t, end, prev, "Grow(0) should return the current end")
}
