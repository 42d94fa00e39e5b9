package bump

// Allocator is the surface a bump allocator exposes to callers.
//
// The single implementation is BumpAllocator; the interface exists so
// callers can hold the allocation contract without naming the concrete
// type, and so tests can interpose.
type Allocator interface {
	// Alloc carves a block described by the layout and returns its start
	// address plus a byte view of exactly layout.Size bytes.
	Alloc(l Layout) (uintptr, []byte, error)

	// Free releases addr if it is the most recently allocated block;
	// otherwise it does nothing. It never reports an error, even for
	// misuse.
	Free(addr uintptr)

	// Close releases the whole region. Idempotent.
	Close() error
}
