package base

import "unsafe"

// Factory interface identifiers.
var (
	IPluginFactoryInfo  = Declare("IPluginFactory", 0x7A4D811C, 0x52114A1F, 0xAED9D2EE, 0x0B43BF9F)
	IPluginFactory2Info = Declare("IPluginFactory2", 0x0007B650, 0xF24B4C0B, 0xA464EDB9, 0xF00B2ABB, IPluginFactoryInfo)
)

// IPluginFactoryVtbl extends FUnknownVtbl with class enumeration and
// instantiation.
type IPluginFactoryVtbl struct {
	FUnknownVtbl
	GetFactoryInfo func(this unsafe.Pointer, info *PFactoryInfo) TResult
	CountClasses   func(this unsafe.Pointer) int32
	GetClassInfo   func(this unsafe.Pointer, index int32, info *PClassInfo) TResult
	CreateInstance func(this unsafe.Pointer, cid *FUID, iid *FUID, obj *unsafe.Pointer) TResult
}

// IPluginFactoryImpl is what a composite must provide to serve
// IPluginFactory.
type IPluginFactoryImpl interface {
	FUnknownImpl
	GetFactoryInfo(info *PFactoryInfo) TResult
	CountClasses() int32
	GetClassInfo(index int32, info *PClassInfo) TResult
	// CreateInstance creates class cid and writes an owned pointer to its
	// iid interface to obj.
	CreateInstance(cid *FUID, iid *FUID, obj *unsafe.Pointer) TResult
}

// NewIPluginFactoryVtbl builds the IPluginFactory table for composite T.
func NewIPluginFactoryVtbl[T any, P interface {
	*T
	IPluginFactoryImpl
}](off Offset) IPluginFactoryVtbl {
	return IPluginFactoryVtbl{
		FUnknownVtbl: NewFUnknownVtbl[T, P](off),
		GetFactoryInfo: func(this unsafe.Pointer, info *PFactoryInfo) (res TResult) {
			defer recoverThunk("IPluginFactory.getFactoryInfo", &res, KInternalError)
			return P(Recover[T](this, off)).GetFactoryInfo(info)
		},
		CountClasses: func(this unsafe.Pointer) (n int32) {
			defer recoverThunk("IPluginFactory.countClasses", &n, 0)
			return P(Recover[T](this, off)).CountClasses()
		},
		GetClassInfo: func(this unsafe.Pointer, index int32, info *PClassInfo) (res TResult) {
			defer recoverThunk("IPluginFactory.getClassInfo", &res, KInternalError)
			return P(Recover[T](this, off)).GetClassInfo(index, info)
		},
		CreateInstance: func(this unsafe.Pointer, cid *FUID, iid *FUID, obj *unsafe.Pointer) (res TResult) {
			defer recoverThunk("IPluginFactory.createInstance", &res, KInternalError)
			return P(Recover[T](this, off)).CreateInstance(cid, iid, obj)
		},
	}
}

// IPluginFactory is a handle to a module's class factory.
type IPluginFactory struct {
	Ptr
}

func (IPluginFactory) InterfaceInfo() *InterfaceInfo { return IPluginFactoryInfo }

func (f IPluginFactory) vtbl() *IPluginFactoryVtbl {
	return VtableOf[IPluginFactoryVtbl](f.raw)
}

// GetFactoryInfo returns the factory's vendor record.
func (f IPluginFactory) GetFactoryInfo() (PFactoryInfo, error) {
	var info PFactoryInfo
	if res := f.vtbl().GetFactoryInfo(f.raw, &info); res != KResultOk {
		return PFactoryInfo{}, resultError(ErrCallFailed, "IPluginFactory.getFactoryInfo", res)
	}
	return info, nil
}

// CountClasses returns the number of classes the factory can create.
func (f IPluginFactory) CountClasses() int32 {
	return f.vtbl().CountClasses(f.raw)
}

// GetClassInfo returns the record of class index.
func (f IPluginFactory) GetClassInfo(index int32) (PClassInfo, error) {
	var info PClassInfo
	if res := f.vtbl().GetClassInfo(f.raw, index, &info); res != KResultOk {
		return PClassInfo{}, resultError(ErrCallFailed, "IPluginFactory.getClassInfo", res)
	}
	return info, nil
}

// AsFUnknown views the handle as its base. Both values share one reference.
func (f IPluginFactory) AsFUnknown() FUnknown {
	return FUnknown{f.Ptr}
}

// CreateInstance asks f to create class cid and returns the new object's T
// interface. The caller owns the result.
func CreateInstance[T any, P Handle[T]](f IPluginFactory, cid FUID) (T, error) {
	var zero T
	info := P(&zero).InterfaceInfo()

	var raw unsafe.Pointer
	if res := f.vtbl().CreateInstance(f.raw, &cid, &info.IID, &raw); res != KResultOk {
		return zero, resultError(ErrBadCast, "IPluginFactory.createInstance "+cid.String(), res)
	}
	if raw == nil {
		return zero, ErrNullTarget
	}
	return FromRaw[T, P](raw), nil
}

// IPluginFactory2Vtbl extends IPluginFactoryVtbl.
type IPluginFactory2Vtbl struct {
	IPluginFactoryVtbl
	GetClassInfo2 func(this unsafe.Pointer, index int32, info *PClassInfo2) TResult
}

// IPluginFactory2Impl is what a composite must provide to serve
// IPluginFactory2.
type IPluginFactory2Impl interface {
	IPluginFactoryImpl
	GetClassInfo2(index int32, info *PClassInfo2) TResult
}

// NewIPluginFactory2Vtbl builds the IPluginFactory2 table for composite T.
func NewIPluginFactory2Vtbl[T any, P interface {
	*T
	IPluginFactory2Impl
}](off Offset) IPluginFactory2Vtbl {
	return IPluginFactory2Vtbl{
		IPluginFactoryVtbl: NewIPluginFactoryVtbl[T, P](off),
		GetClassInfo2: func(this unsafe.Pointer, index int32, info *PClassInfo2) (res TResult) {
			defer recoverThunk("IPluginFactory2.getClassInfo2", &res, KInternalError)
			return P(Recover[T](this, off)).GetClassInfo2(index, info)
		},
	}
}

// IPluginFactory2 is a handle to a factory that reports extended class
// records.
type IPluginFactory2 struct {
	IPluginFactory
}

func (IPluginFactory2) InterfaceInfo() *InterfaceInfo { return IPluginFactory2Info }

// GetClassInfo2 returns the extended record of class index.
func (f IPluginFactory2) GetClassInfo2(index int32) (PClassInfo2, error) {
	var info PClassInfo2
	vt := VtableOf[IPluginFactory2Vtbl](f.raw)
	if res := vt.GetClassInfo2(f.raw, index, &info); res != KResultOk {
		return PClassInfo2{}, resultError(ErrCallFailed, "IPluginFactory2.getClassInfo2", res)
	}
	return info, nil
}

// AsIPluginFactory views the handle as its base. Both values share one
// reference.
func (f IPluginFactory2) AsIPluginFactory() IPluginFactory {
	return f.IPluginFactory
}
