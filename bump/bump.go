package bump

import (
	"os"
	"unsafe"

	"github.com/joshuapare/bumpkit/internal/align"
	"github.com/joshuapare/bumpkit/region"
)

// BumpAllocator carves blocks out of a single region by advancing a frontier
// pointer, and reclaims memory only when the most recently carved block is
// freed.
//
// Key characteristics:
//   - O(1) allocation: align the frontier, grow the region if short, advance
//   - O(1) deallocation: frontier retract for the last block, no-op otherwise
//   - Zero per-block overhead: no headers, no free lists, no maps
//   - Freeing out of stack order leaks the block until Close (by contract)
//
// The allocator owns its region exclusively. It is not safe for concurrent
// use; give each goroutine its own allocator or synchronize outside.
type BumpAllocator struct {
	r region.Region

	// start is the region's fixed start address, captured at construction.
	start uintptr

	// frontier is the boundary between carved and free space. It moves
	// forward on Alloc and retracts only on a last-block Free.
	// start <= frontier <= end at every return.
	frontier uintptr

	// end is the current region end, mirrored from the backend so the
	// common Alloc path decides headroom without a Bounds call.
	end uintptr

	// last is the start address of the most recently carved block, or 0
	// when no block is eligible for the fast free path.
	last uintptr

	// gran is the growth granularity: grows round up to it, the free-path
	// shrink rounds down to it.
	gran uintptr

	closed bool
	stats  Stats
}

// Config adjusts allocator behavior. The zero value of every field selects
// its default, and a nil *Config selects all defaults.
type Config struct {
	// Granularity is the unit region growth is rounded up to and the
	// best-effort shrink is rounded down to. Must be a power of two.
	// Zero selects the OS page size.
	Granularity uintptr
}

// New creates a bump allocator over r. The allocator takes ownership of the
// region: nothing else may move its end, and Close releases it.
//
// Parameters:
//   - r: the backing region (Break, Mapping, or Sim)
//   - cfg: tuning knobs, nil for defaults
func New(r region.Region, cfg *Config) (*BumpAllocator, error) {
	if r == nil {
		return nil, ErrNilRegion
	}
	var gran uintptr
	if cfg != nil {
		gran = cfg.Granularity
	}
	if gran == 0 {
		gran = uintptr(os.Getpagesize())
	}
	if !align.IsPow2(gran) {
		return nil, ErrBadGranularity
	}

	start, end := r.Bounds()
	a := &BumpAllocator{
		r:        r,
		start:    start,
		frontier: start,
		end:      end,
		gran:     gran,
	}
	a.stats.HighWater = end - start
	return a, nil
}

// Alloc carves a block of l.Size bytes aligned to l.Align. It returns the
// block's start address and a byte view over exactly the block.
//
// The frontier is aligned up to the requested boundary; if the region lacks
// headroom it is grown by the shortfall rounded up to the granularity. A
// refused growth surfaces as ErrOutOfMemory with the allocator unchanged, so
// a failed Alloc never moves the frontier.
//
// Alignment padding in front of the block is lost space unless this block is
// later freed as the last block.
func (a *BumpAllocator) Alloc(l Layout) (uintptr, []byte, error) {
	if a.closed {
		return 0, nil, ErrClosed
	}
	if err := l.check(); err != nil {
		return 0, nil, err
	}

	candidate := align.Up(a.frontier, l.Align)
	if candidate < a.frontier {
		return 0, nil, ErrOutOfMemory
	}
	top := candidate + l.Size
	if top < candidate {
		return 0, nil, ErrOutOfMemory
	}

	if top > a.end {
		need := align.Up(top-a.end, a.gran)
		if need < top-a.end {
			return 0, nil, ErrOutOfMemory
		}
		if _, err := a.r.Grow(need); err != nil {
			return 0, nil, ErrOutOfMemory
		}
		a.end += need
		a.stats.Grows++
		if a.end-a.start > a.stats.HighWater {
			a.stats.HighWater = a.end - a.start
		}
	}

	a.stats.Padding += candidate - a.frontier
	a.stats.Allocs++
	a.last = candidate
	a.frontier = top

	return candidate, unsafe.Slice((*byte)(unsafe.Pointer(candidate)), l.Size), nil
}

// Free releases addr if and only if it is the start of the most recently
// allocated block. On that fast path the frontier retracts to addr and the
// region tail is shrunk best-effort, in whole granules; a refused shrink
// just leaves the footprint larger.
//
// Any other nonzero addr is deliberately a no-op: the block stays carved
// until Close. Freeing an address that Alloc never returned, or freeing the
// same block twice, is undefined behavior and is not detected. Free(0) does
// nothing.
func (a *BumpAllocator) Free(addr uintptr) {
	if a.closed || addr == 0 {
		return
	}
	a.stats.Frees++
	if addr != a.last {
		return
	}

	a.frontier = addr
	a.last = 0
	a.stats.FastFrees++

	excess := align.Down(a.end-a.frontier, a.gran)
	if excess == 0 {
		return
	}
	if err := a.r.Shrink(excess); err != nil {
		return
	}
	a.end -= excess
	a.stats.Shrinks++
}

// Close releases the entire region, including blocks that were never freed.
// Safe to call more than once; Alloc after Close returns ErrClosed and Free
// after Close is a no-op. Callers should defer Close right after New so the
// region is returned on every exit path.
func (a *BumpAllocator) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.start, a.frontier, a.end, a.last = 0, 0, 0, 0
	return a.r.Release()
}

// Used returns the bytes between the region start and the frontier: carved
// blocks plus their alignment padding.
func (a *BumpAllocator) Used() uintptr {
	return a.frontier - a.start
}

// Footprint returns the bytes currently held from the region.
func (a *BumpAllocator) Footprint() uintptr {
	return a.end - a.start
}

// HighWater returns the largest footprint reached so far.
func (a *BumpAllocator) HighWater() uintptr {
	return a.stats.HighWater
}

// Granularity returns the configured growth granularity.
func (a *BumpAllocator) Granularity() uintptr {
	return a.gran
}

// Stats returns a snapshot of the allocator counters.
func (a *BumpAllocator) Stats() Stats {
	s := a.stats
	s.Live = a.Used()
	s.Footprint = a.Footprint()
	return s
}

var _ Allocator = (*BumpAllocator)(nil)
