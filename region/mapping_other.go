//go:build !linux && !darwin

package region

// Mapping is unavailable on this platform. Use Sim instead.
type Mapping struct{}

// OpenMapping reports ErrUnsupported on platforms without anonymous
// mapping support.
func OpenMapping(max uintptr) (*Mapping, error) {
	return nil, ErrUnsupported
}

func (m *Mapping) Bounds() (start, end uintptr) { return 0, 0 }

func (m *Mapping) Cap() uintptr { return 0 }

func (m *Mapping) Grow(n uintptr) (uintptr, error) { return 0, ErrUnsupported }

func (m *Mapping) Shrink(n uintptr) error { return ErrUnsupported }

func (m *Mapping) Release() error { return nil }

var _ Region = (*Mapping)(nil)
