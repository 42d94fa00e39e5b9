// Package region abstracts a contiguous, growable span of memory behind a
// single Region interface.
//
// # Overview
//
// A Region models the classic program-break contract: a fixed start address
// and a movable end. Growing returns the previous end, so the caller owns
// [prev, prev+n) exactly; shrinking retracts the end and invalidates the
// vacated bytes. The bump package drives a Region as its backing store.
//
// # Implementations
//
// Break: the real process break, moved with the brk system call
//
//   - Linux only; OpenBreak returns ErrUnsupported elsewhere
//   - Byte-granular moves (the kernel manages pages underneath)
//   - The process must not use the break otherwise (no malloc via brk)
//
// Mapping: a reserved anonymous mapping with page-wise commit
//
//   - Linux and Darwin
//   - Reserves the full span PROT_NONE up front, commits pages as the
//     end advances, decommits on shrink
//   - Capacity is fixed at OpenMapping time
//
// Sim: a fixed-capacity in-process buffer
//
//   - Portable, no system calls
//   - Deterministic exhaustion, so tests can force growth failures
//
// # Usage Example
//
//	r, err := region.OpenMapping(1 << 20)
//	if err != nil {
//	    return err
//	}
//	defer r.Release()
//
//	prev, err := r.Grow(4096)
//	if err != nil {
//	    return err
//	}
//	// [prev, prev+4096) is now readable and writable.
//
// # Ownership
//
// A Region has a single owner. Implementations do no locking; callers that
// share a Region across goroutines must synchronize externally.
package region
