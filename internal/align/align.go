package align

// Address alignment utilities for the allocator.
// All boundaries must be powers of two; callers validate with IsPow2 first.

// IsPow2 reports whether b is a power of two. Zero is not a power of two.
func IsPow2(b uintptr) bool {
	return b != 0 && b&(b-1) == 0
}

// Up returns v aligned up to the next multiple of b.
//
// Example:
//
//	Up(0, 8)  = 0
//	Up(1, 8)  = 8
//	Up(8, 8)  = 8
//	Up(9, 8)  = 16
func Up(v, b uintptr) uintptr {
	return (v + b - 1) &^ (b - 1)
}

// Down returns v aligned down to the previous multiple of b.
//
// Example:
//
//	Down(0, 8)  = 0
//	Down(7, 8)  = 0
//	Down(8, 8)  = 8
//	Down(15, 8) = 8
func Down(v, b uintptr) uintptr {
	return v &^ (b - 1)
}
