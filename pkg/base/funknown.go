package base

import "unsafe"

// FUnknown identifier, {00000000-0000-0000-C000-000000000046}.
var (
	FUnknownInfo = Declare("FUnknown", 0x00000000, 0x00000000, 0xC0000000, 0x00000046)
	FUnknownIID  = FUnknownInfo.IID
)

// FUnknownVtbl holds the three entries every table begins with, in this
// order.
type FUnknownVtbl struct {
	QueryInterface func(this unsafe.Pointer, iid *FUID, obj *unsafe.Pointer) TResult
	AddRef         func(this unsafe.Pointer) uint32
	Release        func(this unsafe.Pointer) uint32
}

// FUnknownImpl is what a composite must provide to serve FUnknown. Object
// provides all three methods.
type FUnknownImpl interface {
	// QueryInterface writes an already referenced pointer for iid to obj and
	// returns KResultOk, or returns KNoInterface and leaves obj untouched.
	QueryInterface(iid *FUID, obj *unsafe.Pointer) TResult
	// AddRef increments the reference count and returns the new count.
	AddRef() uint32
	// Release decrements the reference count, destroys the object when it
	// reaches zero and returns the new count.
	Release() uint32
}

// NewFUnknownVtbl builds the FUnknown entries for composite T whose slot
// sits off words into it.
func NewFUnknownVtbl[T any, P interface {
	*T
	FUnknownImpl
}](off Offset) FUnknownVtbl {
	return FUnknownVtbl{
		QueryInterface: func(this unsafe.Pointer, iid *FUID, obj *unsafe.Pointer) (res TResult) {
			defer recoverThunk("queryInterface", &res, KInternalError)
			return P(Recover[T](this, off)).QueryInterface(iid, obj)
		},
		AddRef: func(this unsafe.Pointer) (n uint32) {
			defer recoverThunk("addRef", &n, 0)
			return P(Recover[T](this, off)).AddRef()
		},
		Release: func(this unsafe.Pointer) (n uint32) {
			defer recoverThunk("release", &n, 0)
			return P(Recover[T](this, off)).Release()
		},
	}
}

// FUnknown is a handle to the root interface of any object.
type FUnknown struct {
	Ptr
}

func (FUnknown) InterfaceInfo() *InterfaceInfo { return FUnknownInfo }

// Equal reports whether u and other denote the same object.
func (u FUnknown) Equal(other Interface) bool {
	return Same(u, other)
}
