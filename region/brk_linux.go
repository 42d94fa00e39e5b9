//go:build linux

package region

import (
	"golang.org/x/sys/unix"
)

// Break is the break-pointer region: it grows and shrinks the process data
// segment through the brk syscall, the primitive classic malloc
// implementations bootstrap from. The Go runtime allocates through mmap and
// leaves the break alone, so a Break instance may own it outright.
//
// Ownership is exclusive by contract: at most one live Break per process,
// and no other break consumer (such as a C allocator pulled in via cgo) may
// run alongside it.
type Break struct {
	start    uintptr
	end      uintptr
	released bool
}

// OpenBreak captures the current program break as the region start. The
// break is not moved until the first Grow.
func OpenBreak() (*Break, error) {
	cur := brk(0)
	if cur == 0 {
		return nil, ErrUnsupported
	}
	return &Break{start: cur, end: cur}, nil
}

// brk asks the kernel to move the program break to addr and returns the
// break in effect afterwards; brk(0) queries without moving. The raw
// syscall reports refusal by returning the old break rather than setting
// errno, so success is detected by comparing the result to the request.
func brk(addr uintptr) uintptr {
	r, _, _ := unix.Syscall(unix.SYS_BRK, addr, 0, 0)
	return r
}

// Bounds returns the captured start and the current break.
func (b *Break) Bounds() (start, end uintptr) {
	if b.released {
		return 0, 0
	}
	return b.start, b.end
}

// Grow moves the break forward by n bytes.
func (b *Break) Grow(n uintptr) (uintptr, error) {
	if b.released {
		return 0, ErrReleased
	}
	if n == 0 {
		return b.end, nil
	}
	target := b.end + n
	if target < b.end {
		return 0, ErrOutOfRange
	}
	if brk(target) != target {
		return 0, ErrGrowFail
	}
	prev := b.end
	b.end = target
	return prev, nil
}

// Shrink moves the break backward by n bytes, handing the pages back to
// the kernel.
func (b *Break) Shrink(n uintptr) error {
	if b.released {
		return ErrReleased
	}
	if n == 0 {
		return nil
	}
	if n > b.end-b.start {
		return ErrOutOfRange
	}
	target := b.end - n
	if brk(target) != target {
		return ErrShrinkFail
	}
	b.end = target
	return nil
}

// Release retracts the break to the region start, returning the whole data
// segment extension to the kernel.
func (b *Break) Release() error {
	if b.released {
		return nil
	}
	b.released = true
	if b.end != b.start && brk(b.start) != b.start {
		return ErrShrinkFail
	}
	b.end = b.start
	return nil
}

var _ Region = (*Break)(nil)
