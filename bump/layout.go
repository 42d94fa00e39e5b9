package bump

import (
	"unsafe"

	"github.com/joshuapare/bumpkit/internal/align"
)

// Layout describes a requested block: how many bytes and on what boundary
// they must start. Size must be positive and Align a power of two.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout builds a validated Layout.
func NewLayout(size, alignment uintptr) (Layout, error) {
	l := Layout{Size: size, Align: alignment}
	if err := l.check(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LayoutOf returns the layout of a single value of type T.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{Size: unsafe.Sizeof(v), Align: unsafe.Alignof(v)}
}

// ArrayOf returns the layout of a contiguous array of n values of type T.
// The element size already carries any trailing padding the type needs, so
// the array size is a plain multiple. A product that would wrap the address
// space saturates instead, which no allocation can satisfy.
func ArrayOf[T any](n uintptr) Layout {
	var v T
	size := unsafe.Sizeof(v)
	if size != 0 && n > ^uintptr(0)/size {
		return Layout{Size: ^uintptr(0), Align: unsafe.Alignof(v)}
	}
	return Layout{Size: n * size, Align: unsafe.Alignof(v)}
}

func (l Layout) check() error {
	if l.Size == 0 {
		return ErrBadSize
	}
	if !align.IsPow2(l.Align) {
		return ErrBadAlign
	}
	return nil
}
