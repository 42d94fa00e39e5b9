package bump

// Stats is a snapshot of allocator activity since construction. All byte
// figures are exact; counters never reset.
type Stats struct {
	// Allocs is the number of successful Alloc calls.
	Allocs uint64

	// Frees is the number of Free calls on a nonzero address, whether or
	// not any memory was reclaimed.
	Frees uint64

	// FastFrees is the number of Free calls that hit the last-block path
	// and retracted the frontier.
	FastFrees uint64

	// Grows and Shrinks count successful region end moves.
	Grows   uint64
	Shrinks uint64

	// Live is the number of bytes between the region start and the
	// frontier: carved blocks plus their alignment padding.
	Live uintptr

	// Footprint is the number of bytes currently held from the region,
	// start to end.
	Footprint uintptr

	// HighWater is the largest Footprint ever reached.
	HighWater uintptr

	// Padding is the total alignment padding carved so far. Bytes
	// recovered when a padded last block is freed are not subtracted.
	Padding uintptr
}
