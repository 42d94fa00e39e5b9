package region

import "errors"

var (
	// ErrUnsupported indicates the backend is not available on this platform.
	ErrUnsupported = errors.New("region: backend not supported on this platform")

	// ErrReleased indicates an operation on a region after Release.
	ErrReleased = errors.New("region: region released")

	// ErrGrowFail indicates the end could not be moved forward (capacity
	// exhausted or the OS refused the request).
	ErrGrowFail = errors.New("region: grow refused")

	// ErrShrinkFail indicates the end could not be moved backward.
	ErrShrinkFail = errors.New("region: shrink refused")

	// ErrOutOfRange indicates an adjustment that would move the end past
	// the region start or wrap the address space.
	ErrOutOfRange = errors.New("region: adjustment out of range")
)
