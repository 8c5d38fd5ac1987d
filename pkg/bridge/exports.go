package bridge

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/justyntemme/vst3sys/pkg/base"
	"github.com/justyntemme/vst3sys/pkg/framework/debug"
)

// The functions below are the targets of the C table entries. Each resolves
// the C object's id and dispatches through the Go table of the wrapped
// interface, which steps back to the composite by its slot offset.

func tresult(r base.TResult) C.int32_t {
	return C.int32_t(r)
}

// recoverExport keeps a panic from unwinding into C.
func recoverExport(op string, res *C.int32_t) {
	if r := recover(); r != nil {
		debug.Error("bridge: panic in %s: %v", op, r)
		*res = tresult(base.KInternalError)
	}
}

func storeResult(obj unsafe.Pointer, c unsafe.Pointer) C.int32_t {
	if c == nil {
		return tresult(base.KOutOfMemory)
	}
	*(*unsafe.Pointer)(obj) = c
	return tresult(base.KResultOk)
}

//export vst3sysQueryInterface
func vst3sysQueryInterface(id C.uintptr_t, iid unsafe.Pointer, obj unsafe.Pointer) (res C.int32_t) {
	defer recoverExport("queryInterface", &res)
	iface, ok := lookup(id)
	if !ok || iid == nil || obj == nil {
		return tresult(base.KInvalidArgument)
	}
	want := base.FUIDAt(iid)
	if !Supports(want) {
		*(*unsafe.Pointer)(obj) = nil
		return tresult(base.KNoInterface)
	}

	var raw unsafe.Pointer
	if r := base.VtableOf[base.FUnknownVtbl](iface).QueryInterface(iface, &want, &raw); r != base.KResultOk {
		*(*unsafe.Pointer)(obj) = nil
		return tresult(r)
	}
	return storeResult(obj, wrap(raw, want))
}

//export vst3sysAddRef
func vst3sysAddRef(id C.uintptr_t) C.uint32_t {
	return C.uint32_t(addRef(id))
}

//export vst3sysRelease
func vst3sysRelease(id C.uintptr_t) C.uint32_t {
	return C.uint32_t(release(id))
}

//export vst3sysInitialize
func vst3sysInitialize(id C.uintptr_t, context unsafe.Pointer) (res C.int32_t) {
	defer recoverExport("initialize", &res)
	iface, ok := lookup(id)
	if !ok {
		return tresult(base.KInvalidArgument)
	}
	return tresult(base.VtableOf[base.IPluginBaseVtbl](iface).Initialize(iface, context))
}

//export vst3sysTerminate
func vst3sysTerminate(id C.uintptr_t) (res C.int32_t) {
	defer recoverExport("terminate", &res)
	iface, ok := lookup(id)
	if !ok {
		return tresult(base.KInvalidArgument)
	}
	return tresult(base.VtableOf[base.IPluginBaseVtbl](iface).Terminate(iface))
}

//export vst3sysGetFactoryInfo
func vst3sysGetFactoryInfo(id C.uintptr_t, info unsafe.Pointer) (res C.int32_t) {
	defer recoverExport("getFactoryInfo", &res)
	iface, ok := lookup(id)
	if !ok {
		return tresult(base.KInvalidArgument)
	}
	return tresult(base.VtableOf[base.IPluginFactoryVtbl](iface).GetFactoryInfo(iface, (*base.PFactoryInfo)(info)))
}

//export vst3sysCountClasses
func vst3sysCountClasses(id C.uintptr_t) (n C.int32_t) {
	defer recoverExport("countClasses", &n)
	iface, ok := lookup(id)
	if !ok {
		return 0
	}
	return C.int32_t(base.VtableOf[base.IPluginFactoryVtbl](iface).CountClasses(iface))
}

//export vst3sysGetClassInfo
func vst3sysGetClassInfo(id C.uintptr_t, index C.int32_t, info unsafe.Pointer) (res C.int32_t) {
	defer recoverExport("getClassInfo", &res)
	iface, ok := lookup(id)
	if !ok {
		return tresult(base.KInvalidArgument)
	}
	return tresult(base.VtableOf[base.IPluginFactoryVtbl](iface).GetClassInfo(iface, int32(index), (*base.PClassInfo)(info)))
}

//export vst3sysGetClassInfo2
func vst3sysGetClassInfo2(id C.uintptr_t, index C.int32_t, info unsafe.Pointer) (res C.int32_t) {
	defer recoverExport("getClassInfo2", &res)
	iface, ok := lookup(id)
	if !ok {
		return tresult(base.KInvalidArgument)
	}
	return tresult(base.VtableOf[base.IPluginFactory2Vtbl](iface).GetClassInfo2(iface, int32(index), (*base.PClassInfo2)(info)))
}

//export vst3sysCreateInstance
func vst3sysCreateInstance(id C.uintptr_t, cid unsafe.Pointer, iid unsafe.Pointer, obj unsafe.Pointer) (res C.int32_t) {
	defer recoverExport("createInstance", &res)
	iface, ok := lookup(id)
	if !ok || cid == nil || iid == nil || obj == nil {
		return tresult(base.KInvalidArgument)
	}
	class, want := base.FUIDAt(cid), base.FUIDAt(iid)
	if !Supports(want) {
		*(*unsafe.Pointer)(obj) = nil
		return tresult(base.KNoInterface)
	}

	var raw unsafe.Pointer
	if r := base.VtableOf[base.IPluginFactoryVtbl](iface).CreateInstance(iface, &class, &want, &raw); r != base.KResultOk {
		*(*unsafe.Pointer)(obj) = nil
		return tresult(r)
	}
	return storeResult(obj, wrap(raw, want))
}
