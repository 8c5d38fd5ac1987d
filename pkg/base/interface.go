package base

import (
	"unsafe"
)

// Interface is implemented by every interface handle.
type Interface interface {
	// AsRaw returns the interface pointer. Ownership stays with the handle.
	AsRaw() unsafe.Pointer

	// InterfaceInfo describes the handle's interface. It must not depend on
	// the receiver's value; it is called on zero handles.
	InterfaceInfo() *InterfaceInfo
}

// Handle is the constraint satisfied by pointers to handle types, that is by
// any struct type embedding Ptr and declaring InterfaceInfo.
type Handle[T any] interface {
	*T
	Interface
	rawSlot() *unsafe.Pointer
}

// Ptr is the single pointer a handle consists of. Handle types embed it.
type Ptr struct {
	raw unsafe.Pointer
}

// AsRaw returns the interface pointer without transferring ownership.
func (p Ptr) AsRaw() unsafe.Pointer {
	return p.raw
}

// IsNil reports whether the handle is empty.
func (p Ptr) IsNil() bool {
	return p.raw == nil
}

func (p *Ptr) rawSlot() *unsafe.Pointer {
	return &p.raw
}

// AddRef increments the object's reference count and returns the new count.
// The returned count is informational.
func (p Ptr) AddRef() uint32 {
	return VtableOf[FUnknownVtbl](p.raw).AddRef(p.raw)
}

// Release gives up the handle's reference and empties the handle. Releasing
// an empty handle does nothing. Releasing a copy of a released handle is a
// contract violation.
func (p *Ptr) Release() uint32 {
	raw := p.raw
	if raw == nil {
		return 0
	}
	p.raw = nil
	return VtableOf[FUnknownVtbl](raw).Release(raw)
}

// FromRaw wraps a pointer the caller already holds a reference for. raw
// must be nil or address a vtable pointer whose table begins with T's table.
func FromRaw[T any, P Handle[T]](raw unsafe.Pointer) T {
	var h T
	*P(&h).rawSlot() = raw
	return h
}

// Clone adds a reference and returns another owned handle to the same
// interface pointer.
func Clone[T any, P Handle[T]](h T) T {
	if raw := P(&h).AsRaw(); raw != nil {
		VtableOf[FUnknownVtbl](raw).AddRef(raw)
	}
	return h
}

// Query asks src's object for iid through src's own table. On success an
// owned pointer is written to out. On failure out is left untouched and the
// error is ErrNullTarget, ErrBadQuery or a *ResultError of kind ErrBadCast.
func Query(src Interface, iid *FUID, out *unsafe.Pointer) error {
	if out == nil || iid == nil {
		return ErrNullTarget
	}
	if !src.InterfaceInfo().Queryable {
		return ErrBadQuery
	}
	raw := src.AsRaw()
	if raw == nil {
		return ErrNullTarget
	}

	var obj unsafe.Pointer
	if res := VtableOf[FUnknownVtbl](raw).QueryInterface(raw, iid, &obj); res != KResultOk {
		return resultError(ErrBadCast, "query "+NameOf(*iid), res)
	}
	*out = obj
	return nil
}

// Cast queries src for T's interface and returns an owned T. src is not
// modified whatever the outcome.
func Cast[T any, P Handle[T]](src Interface) (T, error) {
	var zero T
	info := P(&zero).InterfaceInfo()

	var raw unsafe.Pointer
	if err := Query(src, &info.IID, &raw); err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, ErrNullTarget
	}
	return FromRaw[T, P](raw), nil
}

// Same reports whether a and b are handles to the same object. Distinct
// interfaces of one object have distinct pointers, so after the pointer
// shortcut both sides are canonicalized through FUnknown.
func Same(a, b Interface) bool {
	ra, rb := a.AsRaw(), b.AsRaw()
	if ra == rb {
		return true
	}
	if ra == nil || rb == nil {
		return false
	}

	ua, err := Cast[FUnknown](a)
	if err != nil {
		return false
	}
	defer ua.Release()
	ub, err := Cast[FUnknown](b)
	if err != nil {
		return false
	}
	defer ub.Release()

	return ua.AsRaw() == ub.AsRaw()
}
