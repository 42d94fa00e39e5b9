package bump

import "errors"

var (
	// ErrOutOfMemory indicates the region refused to grow far enough to
	// satisfy the request. The allocator is unchanged and stays usable.
	ErrOutOfMemory = errors.New("bump: out of memory")

	// ErrBadSize indicates a layout with a zero size.
	ErrBadSize = errors.New("bump: layout size must be positive")

	// ErrBadAlign indicates a layout whose alignment is not a power of two.
	ErrBadAlign = errors.New("bump: layout alignment must be a power of two")

	// ErrBadGranularity indicates a configured growth granularity that is
	// not a power of two.
	ErrBadGranularity = errors.New("bump: growth granularity must be a power of two")

	// ErrNilRegion indicates construction without a backing region.
	ErrNilRegion = errors.New("bump: nil region")

	// ErrClosed indicates an allocation attempt after Close.
	ErrClosed = errors.New("bump: allocator closed")
)
