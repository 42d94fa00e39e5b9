package region

// Region is a contiguous span of process memory that grows and shrinks only
// at its end, the way the program break moves. The start address is fixed
// for the lifetime of the region; the end address is the current break.
//
// Implementations:
//   - Break: the process data segment, moved with the brk syscall (Linux)
//   - Mapping: reserved anonymous address space, committed page by page
//   - Sim: an in-process emulated break for tests and portable use
//
// A region has exactly one owner at a time. None of the implementations are
// safe for concurrent use.
type Region interface {
	// Bounds returns the span's start address and current end address.
	// Both are zero once the region has been released.
	Bounds() (start, end uintptr)

	// Grow moves the end forward by exactly n bytes and returns the
	// previous end on success. Growing by zero is a no-op that returns
	// the current end. On failure the region is unchanged.
	Grow(n uintptr) (uintptr, error)

	// Shrink moves the end backward by exactly n bytes. Shrinking by
	// zero is a no-op. On failure the region is unchanged.
	Shrink(n uintptr) error

	// Release returns the whole span to the operating system. The region
	// is unusable afterwards; releasing twice is a no-op.
	Release() error
}
