//go:build !linux

package region

// Break is the break-pointer region. Moving the process break requires the
// brk syscall, which this platform does not expose; OpenBreak always fails
// here. Use Mapping or Sim instead.
type Break struct{}

// OpenBreak is unavailable on this platform.
func OpenBreak() (*Break, error) {
	return nil, ErrUnsupported
}

func (b *Break) Bounds() (start, end uintptr) { return 0, 0 }

func (b *Break) Grow(n uintptr) (uintptr, error) { return 0, ErrUnsupported }

func (b *Break) Shrink(n uintptr) error { return ErrUnsupported }

func (b *Break) Release() error { return nil }

var _ Region = (*Break)(nil)
