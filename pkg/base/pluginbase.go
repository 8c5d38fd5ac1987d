package base

import "unsafe"

// IPluginBaseInfo declares IPluginBase, the initialize/terminate pair every
// plugin class implements.
var IPluginBaseInfo = Declare("IPluginBase", 0x22888DD8, 0x156E45AE, 0x8358B348, 0x08190625)

// IPluginBaseVtbl extends FUnknownVtbl.
type IPluginBaseVtbl struct {
	FUnknownVtbl
	Initialize func(this unsafe.Pointer, context unsafe.Pointer) TResult
	Terminate  func(this unsafe.Pointer) TResult
}

// IPluginBaseImpl is what a composite must provide to serve IPluginBase.
type IPluginBaseImpl interface {
	FUnknownImpl
	// Initialize is called once after creation. context is the host's
	// FUnknown pointer and may be nil.
	Initialize(context unsafe.Pointer) TResult
	Terminate() TResult
}

// NewIPluginBaseVtbl builds the IPluginBase table for composite T.
func NewIPluginBaseVtbl[T any, P interface {
	*T
	IPluginBaseImpl
}](off Offset) IPluginBaseVtbl {
	return IPluginBaseVtbl{
		FUnknownVtbl: NewFUnknownVtbl[T, P](off),
		Initialize: func(this unsafe.Pointer, context unsafe.Pointer) (res TResult) {
			defer recoverThunk("IPluginBase.initialize", &res, KInternalError)
			return P(Recover[T](this, off)).Initialize(context)
		},
		Terminate: func(this unsafe.Pointer) (res TResult) {
			defer recoverThunk("IPluginBase.terminate", &res, KInternalError)
			return P(Recover[T](this, off)).Terminate()
		},
	}
}

// IPluginBase is a handle to an object's IPluginBase interface.
type IPluginBase struct {
	Ptr
}

func (IPluginBase) InterfaceInfo() *InterfaceInfo { return IPluginBaseInfo }

func (p IPluginBase) vtbl() *IPluginBaseVtbl {
	return VtableOf[IPluginBaseVtbl](p.raw)
}

// Initialize passes the host context to the plugin. A failure is reported as
// ErrInitFailed carrying the plugin's result code.
func (p IPluginBase) Initialize(context unsafe.Pointer) error {
	if res := p.vtbl().Initialize(p.raw, context); res != KResultOk {
		return resultError(ErrInitFailed, "IPluginBase.initialize", res)
	}
	return nil
}

// InitializeWith passes a host object as the context.
func (p IPluginBase) InitializeWith(host Interface) error {
	return p.Initialize(host.AsRaw())
}

// Terminate is the counterpart of Initialize.
func (p IPluginBase) Terminate() error {
	if res := p.vtbl().Terminate(p.raw); res != KResultOk {
		return resultError(ErrCallFailed, "IPluginBase.terminate", res)
	}
	return nil
}

// AsFUnknown views the handle as its base. Both values share one reference.
func (p IPluginBase) AsFUnknown() FUnknown {
	return FUnknown{p.Ptr}
}
