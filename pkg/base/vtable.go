package base

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/justyntemme/vst3sys/pkg/framework/debug"
)

// PtrSize is the width of one vtable entry and of one vtable pointer slot.
const PtrSize = unsafe.Sizeof(uintptr(0))

// Offset is the position of an interface's vtable pointer inside a composite
// object, counted in pointer-sized words from the start of the object.
type Offset int

// OffsetOf converts the byte offset of a Slot field, as reported by
// unsafe.Offsetof, into an Offset. It panics if the field is not pointer
// aligned, which means it cannot be a Slot.
func OffsetOf(byteOffset uintptr) Offset {
	if byteOffset%PtrSize != 0 {
		panic(fmt.Sprintf("base: slot offset %d is not a multiple of %d", byteOffset, PtrSize))
	}
	return Offset(byteOffset / PtrSize)
}

// Bytes returns the offset in bytes.
func (o Offset) Bytes() uintptr {
	return uintptr(o) * PtrSize
}

// Slot is the vtable pointer of one interface inside a composite object.
// The address of the slot is the interface pointer handed to callers.
type Slot[V any] struct {
	vtbl *V
}

// Init points the slot at its table. Tables are package-level values built
// once per composite type.
func (s *Slot[V]) Init(vtbl *V) {
	s.vtbl = vtbl
}

// Raw returns the interface pointer this slot represents.
func (s *Slot[V]) Raw() unsafe.Pointer {
	return unsafe.Pointer(s)
}

// Vtbl returns the table the slot points at.
func (s *Slot[V]) Vtbl() *V {
	return s.vtbl
}

// Recover maps an interface pointer received by a thunk back to the
// composite that owns it by stepping back off words.
func Recover[T any](this unsafe.Pointer, off Offset) *T {
	return (*T)(unsafe.Add(this, -int(off.Bytes())))
}

// VtableOf reads the table an interface pointer addresses and views it as a
// V. V must be the interface's table or one of its prefixes.
func VtableOf[V any](raw unsafe.Pointer) *V {
	return *(**V)(raw)
}

// recoverThunk keeps a panic raised by a Go implementation from unwinding
// into the caller of a vtable entry. The entry returns fallback instead.
func recoverThunk[R any](op string, res *R, fallback R) {
	if r := recover(); r != nil {
		debug.Default().Zap().Error("panic in vtable entry", zap.String("op", op), zap.Any("panic", r))
		*res = fallback
	}
}
