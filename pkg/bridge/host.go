package bridge

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/justyntemme/vst3sys/pkg/base"
)

// Unknown is a reference to an object reached only through its C table, the
// way a host holds a module's objects. Every call goes through the C
// function pointers of the table.
type Unknown struct {
	p unsafe.Pointer
}

// Adopt wraps a C object pointer the caller holds a reference for.
func Adopt(p unsafe.Pointer) Unknown {
	return Unknown{p: p}
}

// Raw returns the C object pointer.
func (u Unknown) Raw() unsafe.Pointer { return u.p }

// IsNil reports whether the reference is empty.
func (u Unknown) IsNil() bool { return u.p == nil }

// Query calls queryInterface and returns an owned reference to iid.
func (u Unknown) Query(iid base.FUID) (Unknown, error) {
	if u.p == nil {
		return Unknown{}, base.ErrNullTarget
	}
	var out unsafe.Pointer
	res := base.TResult(C.vst3sys_query(u.p, unsafe.Pointer(&iid), &out))
	if res != base.KResultOk {
		return Unknown{}, &base.ResultError{Kind: base.ErrBadCast, Op: "query " + base.NameOf(iid), Code: res}
	}
	if out == nil {
		return Unknown{}, base.ErrNullTarget
	}
	return Unknown{p: out}, nil
}

// AddRef calls addRef and returns the new count.
func (u Unknown) AddRef() uint32 {
	return uint32(C.vst3sys_add_ref(u.p))
}

// Release calls release and empties the reference. Releasing an empty
// reference does nothing.
func (u *Unknown) Release() uint32 {
	p := u.p
	if p == nil {
		return 0
	}
	u.p = nil
	return uint32(C.vst3sys_release(p))
}

// PluginBase is an Unknown known to serve IPluginBase.
type PluginBase struct {
	Unknown
}

// Initialize calls initialize with the host context.
func (p PluginBase) Initialize(context unsafe.Pointer) error {
	if res := base.TResult(C.vst3sys_initialize(p.p, context)); res != base.KResultOk {
		return &base.ResultError{Kind: base.ErrInitFailed, Op: "IPluginBase.initialize", Code: res}
	}
	return nil
}

// Terminate calls terminate.
func (p PluginBase) Terminate() error {
	if res := base.TResult(C.vst3sys_terminate(p.p)); res != base.KResultOk {
		return &base.ResultError{Kind: base.ErrCallFailed, Op: "IPluginBase.terminate", Code: res}
	}
	return nil
}

// Factory is an Unknown known to serve IPluginFactory2.
type Factory struct {
	Unknown
}

// GetFactoryInfo calls getFactoryInfo.
func (f Factory) GetFactoryInfo() (base.PFactoryInfo, error) {
	var info base.PFactoryInfo
	if res := base.TResult(C.vst3sys_get_factory_info(f.p, unsafe.Pointer(&info))); res != base.KResultOk {
		return base.PFactoryInfo{}, &base.ResultError{Kind: base.ErrCallFailed, Op: "IPluginFactory.getFactoryInfo", Code: res}
	}
	return info, nil
}

// CountClasses calls countClasses.
func (f Factory) CountClasses() int32 {
	return int32(C.vst3sys_count_classes(f.p))
}

// GetClassInfo calls getClassInfo.
func (f Factory) GetClassInfo(index int32) (base.PClassInfo, error) {
	var info base.PClassInfo
	if res := base.TResult(C.vst3sys_get_class_info(f.p, C.int32_t(index), unsafe.Pointer(&info))); res != base.KResultOk {
		return base.PClassInfo{}, &base.ResultError{Kind: base.ErrCallFailed, Op: "IPluginFactory.getClassInfo", Code: res}
	}
	return info, nil
}

// GetClassInfo2 calls getClassInfo2.
func (f Factory) GetClassInfo2(index int32) (base.PClassInfo2, error) {
	var info base.PClassInfo2
	if res := base.TResult(C.vst3sys_get_class_info2(f.p, C.int32_t(index), unsafe.Pointer(&info))); res != base.KResultOk {
		return base.PClassInfo2{}, &base.ResultError{Kind: base.ErrCallFailed, Op: "IPluginFactory2.getClassInfo2", Code: res}
	}
	return info, nil
}

// CreateInstance calls createInstance and returns an owned reference to the
// new object's iid interface.
func (f Factory) CreateInstance(cid, iid base.FUID) (Unknown, error) {
	var out unsafe.Pointer
	res := base.TResult(C.vst3sys_create_instance(f.p, unsafe.Pointer(&cid), unsafe.Pointer(&iid), &out))
	if res != base.KResultOk {
		return Unknown{}, &base.ResultError{Kind: base.ErrCallFailed, Op: "IPluginFactory.createInstance " + base.NameOf(iid), Code: res}
	}
	if out == nil {
		return Unknown{}, base.ErrNullTarget
	}
	return Unknown{p: out}, nil
}
