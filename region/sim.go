package region

import "unsafe"

// Sim emulates a program break inside a single fixed-capacity buffer. Every
// instance owns a private break, so growth, exhaustion and shrink behavior
// is deterministic and never touches process-global state. It is the
// backend tests build a fresh allocator on, and the portable fallback where
// neither Break nor Mapping is available.
//
// The buffer is allocated up front and never moves, so addresses handed out
// while the region is live stay valid until Release. Bytes regrown after a
// shrink may retain their previous contents.
type Sim struct {
	mem      []byte
	brk      uintptr // committed bytes from the start of mem
	released bool
}

// NewSim creates a simulated region with the given fixed capacity in bytes.
// Growth beyond the capacity fails with ErrGrowFail, which makes exhaustion
// scenarios reproducible.
func NewSim(capacity uintptr) (*Sim, error) {
	if capacity == 0 {
		return nil, ErrOutOfRange
	}
	return &Sim{mem: make([]byte, capacity)}, nil
}

func (s *Sim) base() uintptr {
	return uintptr(unsafe.Pointer(&s.mem[0]))
}

// Bounds returns the start of the buffer and the current simulated break.
func (s *Sim) Bounds() (start, end uintptr) {
	if s.released {
		return 0, 0
	}
	return s.base(), s.base() + s.brk
}

// Cap returns the fixed capacity in bytes.
func (s *Sim) Cap() uintptr {
	return uintptr(len(s.mem))
}

// Grow moves the simulated break forward by n bytes.
func (s *Sim) Grow(n uintptr) (uintptr, error) {
	if s.released {
		return 0, ErrReleased
	}
	if n == 0 {
		return s.base() + s.brk, nil
	}
	if n > uintptr(len(s.mem))-s.brk {
		return 0, ErrGrowFail
	}
	prev := s.base() + s.brk
	s.brk += n
	return prev, nil
}

// Shrink moves the simulated break backward by n bytes.
func (s *Sim) Shrink(n uintptr) error {
	if s.released {
		return ErrReleased
	}
	if n > s.brk {
		return ErrOutOfRange
	}
	s.brk -= n
	return nil
}

// Release drops the backing buffer. Addresses handed out earlier are
// invalid from here on.
func (s *Sim) Release() error {
	if s.released {
		return nil
	}
	s.released = true
	s.brk = 0
	s.mem = nil
	return nil
}

var _ Region = (*Sim)(nil)
