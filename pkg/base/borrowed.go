package base

import "unsafe"

// Borrowed is a view of an owned handle that holds no reference. It must
// not be used after the owner is released; Get panics if it is.
type Borrowed[T Interface] struct {
	owner *T
}

// Borrow returns a view of *owner.
func Borrow[T Interface](owner *T) Borrowed[T] {
	return Borrowed[T]{owner: owner}
}

// Get returns the owner's handle for transient use. The caller must not
// release it.
func (b Borrowed[T]) Get() T {
	if (*b.owner).AsRaw() == nil {
		panic("base: borrowed reference used after its owner was released")
	}
	return *b.owner
}

// ToOwned adds a reference and returns a handle the caller must release.
func (b Borrowed[T]) ToOwned() T {
	h := b.Get()
	raw := h.AsRaw()
	VtableOf[FUnknownVtbl](raw).AddRef(raw)
	return h
}

// AsRaw returns the owner's interface pointer.
func (b Borrowed[T]) AsRaw() unsafe.Pointer {
	return b.Get().AsRaw()
}

// InterfaceInfo describes the owner's interface.
func (b Borrowed[T]) InterfaceInfo() *InterfaceInfo {
	var zero T
	return zero.InterfaceInfo()
}
