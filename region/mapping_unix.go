//go:build linux || darwin

package region

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/bumpkit/internal/align"
)

// Mapping is a page-mapping region: it reserves a fixed span of anonymous
// address space up front and commits or decommits whole pages as the end
// moves. Reserved-but-uncommitted pages cost address space only (PROT_NONE
// plus MAP_NORESERVE), so a generous reserve is cheap.
//
// Mapping is the drop-in alternative for processes that cannot hand the
// process break to the allocator.
type Mapping struct {
	mem      []byte  // whole reserved span; PROT_NONE beyond the committed pages
	end      uintptr // committed bytes, byte-granular like the break
	pageSize uintptr
	released bool
}

// OpenMapping reserves max bytes of address space, rounded up to whole
// pages, and returns an empty region inside it.
func OpenMapping(max uintptr) (*Mapping, error) {
	if max == 0 {
		return nil, ErrOutOfRange
	}
	pageSize := uintptr(os.Getpagesize())
	reserve := align.Up(max, pageSize)
	mem, err := unix.Mmap(-1, 0, int(reserve), unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANON|unix.MAP_NORESERVE)
	if err != nil {
		return nil, fmt.Errorf("region: reserve %d bytes: %w", reserve, err)
	}
	return &Mapping{mem: mem, pageSize: pageSize}, nil
}

func (m *Mapping) base() uintptr {
	return uintptr(unsafe.Pointer(&m.mem[0]))
}

// Bounds returns the start of the reserved span and the current end.
func (m *Mapping) Bounds() (start, end uintptr) {
	if m.released {
		return 0, 0
	}
	return m.base(), m.base() + m.end
}

// Cap returns the reserved capacity in bytes.
func (m *Mapping) Cap() uintptr {
	return uintptr(len(m.mem))
}

// Grow moves the end forward by n bytes, committing any pages the new end
// reaches into.
func (m *Mapping) Grow(n uintptr) (uintptr, error) {
	if m.released {
		return 0, ErrReleased
	}
	if n == 0 {
		return m.base() + m.end, nil
	}
	if n > uintptr(len(m.mem))-m.end {
		return 0, ErrGrowFail
	}
	newEnd := m.end + n
	oldPage := align.Up(m.end, m.pageSize)
	newPage := align.Up(newEnd, m.pageSize)
	if newPage > oldPage {
		if err := unix.Mprotect(m.mem[oldPage:newPage], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("%w: mprotect: %v", ErrGrowFail, err)
		}
	}
	prev := m.base() + m.end
	m.end = newEnd
	return prev, nil
}

// Shrink moves the end backward by n bytes, decommitting pages the end no
// longer reaches into.
func (m *Mapping) Shrink(n uintptr) error {
	if m.released {
		return ErrReleased
	}
	if n == 0 {
		return nil
	}
	if n > m.end {
		return ErrOutOfRange
	}
	newEnd := m.end - n
	oldPage := align.Up(m.end, m.pageSize)
	newPage := align.Up(newEnd, m.pageSize)
	if oldPage > newPage {
		// Drop the backing store first, then seal the pages so a stale
		// pointer faults instead of silently reading zeros.
		if err := unix.Madvise(m.mem[newPage:oldPage], unix.MADV_DONTNEED); err != nil {
			return fmt.Errorf("%w: madvise: %v", ErrShrinkFail, err)
		}
		if err := unix.Mprotect(m.mem[newPage:oldPage], unix.PROT_NONE); err != nil {
			return fmt.Errorf("%w: mprotect: %v", ErrShrinkFail, err)
		}
	}
	m.end = newEnd
	return nil
}

// Release unmaps the whole reserved span.
func (m *Mapping) Release() error {
	if m.released {
		return nil
	}
	m.released = true
	m.end = 0
	mem := m.mem
	m.mem = nil
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("region: munmap: %w", err)
	}
	return nil
}

var _ Region = (*Mapping)(nil)
