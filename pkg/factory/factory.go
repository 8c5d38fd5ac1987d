// Package factory implements IPluginFactory2 over a set of registered
// classes and keeps the module's process-wide factory.
package factory

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/justyntemme/vst3sys/pkg/base"
	"github.com/justyntemme/vst3sys/pkg/framework/debug"
	"github.com/justyntemme/vst3sys/pkg/framework/plugin"
)

// Constructor creates one instance of a class and returns an owned handle to
// any of its interfaces.
type Constructor func() (base.FUnknown, error)

// Class pairs a class record with its constructor.
type Class struct {
	Info   plugin.Info
	Create Constructor
}

// factory is the composite behind the handle New returns.
type factory struct {
	slot base.Slot[base.IPluginFactory2Vtbl]
	base.Object

	info    base.PFactoryInfo
	classes []Class
	infos   []base.PClassInfo2
	byCID   map[base.FUID]int
}

var factoryVtbl = base.NewIPluginFactory2Vtbl[factory](base.OffsetOf(unsafe.Offsetof(factory{}.slot)))

// ErrDuplicateClass is returned by New when two classes share a class ID.
var ErrDuplicateClass = errors.New("duplicate class ID")

// New builds a factory serving classes and returns the caller's owned
// handle to it.
func New(info base.PFactoryInfo, classes ...Class) (base.IPluginFactory2, error) {
	f := &factory{info: info, byCID: make(map[base.FUID]int, len(classes))}
	for _, c := range classes {
		if err := c.Info.ValidateUID(); err != nil {
			return base.IPluginFactory2{}, err
		}
		if c.Create == nil {
			return base.IPluginFactory2{}, fmt.Errorf("class %q has no constructor", c.Info.ID)
		}
		cid := c.Info.UID()
		if prev, ok := f.byCID[cid]; ok {
			return base.IPluginFactory2{}, fmt.Errorf("%w %s: %q and %q", ErrDuplicateClass, cid, f.classes[prev].Info.ID, c.Info.ID)
		}
		f.byCID[cid] = len(f.classes)
		f.classes = append(f.classes, c)
		f.infos = append(f.infos, c.Info.ClassInfo2())
	}

	f.slot.Init(&factoryVtbl)
	f.Init("IPluginFactory2 "+info.VendorString(), nil)
	f.Expose(base.IPluginFactory2Info, f.slot.Raw())

	return base.FromRaw[base.IPluginFactory2](f.slot.Raw()), nil
}

// FromConfig builds a factory from cfg, binding each configured class to the
// constructor registered under its ID.
func FromConfig(cfg *Config, ctors map[string]Constructor) (base.IPluginFactory2, error) {
	if err := cfg.Validate(); err != nil {
		return base.IPluginFactory2{}, err
	}
	if level, err := debug.ParseLevel(cfg.Log.Level); err == nil {
		debug.SetLevel(level)
	}
	info, err := cfg.FactoryInfo()
	if err != nil {
		return base.IPluginFactory2{}, err
	}

	classes := make([]Class, 0, len(cfg.Classes))
	for _, cc := range cfg.Classes {
		ctor, ok := ctors[cc.ID]
		if !ok {
			return base.IPluginFactory2{}, fmt.Errorf("class %q: no constructor registered", cc.ID)
		}
		classes = append(classes, Class{Info: cc.Info(cfg.Vendor), Create: ctor})
	}
	return New(info, classes...)
}

func (f *factory) GetFactoryInfo(info *base.PFactoryInfo) base.TResult {
	if info == nil {
		return base.KInvalidArgument
	}
	*info = f.info
	return base.KResultOk
}

func (f *factory) CountClasses() int32 {
	return int32(len(f.classes))
}

func (f *factory) GetClassInfo(index int32, info *base.PClassInfo) base.TResult {
	if info == nil || index < 0 || int(index) >= len(f.infos) {
		return base.KInvalidArgument
	}
	*info = f.infos[index].PClassInfo
	return base.KResultOk
}

func (f *factory) GetClassInfo2(index int32, info *base.PClassInfo2) base.TResult {
	if info == nil || index < 0 || int(index) >= len(f.infos) {
		return base.KInvalidArgument
	}
	*info = f.infos[index]
	return base.KResultOk
}

// CreateInstance creates the class, queries iid on it and drops the
// creation reference, so the caller ends up holding the only one.
func (f *factory) CreateInstance(cid, iid *base.FUID, obj *unsafe.Pointer) base.TResult {
	if cid == nil || iid == nil || obj == nil {
		return base.KInvalidArgument
	}
	idx, ok := f.byCID[*cid]
	if !ok {
		debug.Debug("createInstance: unknown class %s", cid)
		return base.KNoInterface
	}

	inst, err := f.classes[idx].Create()
	if err != nil {
		debug.Warn("createInstance: %s: %v", f.classes[idx].Info.ID, err)
		return base.KInternalError
	}
	if inst.IsNil() {
		return base.KOutOfMemory
	}
	defer inst.Release()

	var out unsafe.Pointer
	if err := base.Query(inst, iid, &out); err != nil {
		debug.Debug("createInstance: %s: %v", f.classes[idx].Info.ID, err)
		return base.KNoInterface
	}
	*obj = out
	return base.KResultOk
}

var (
	registered   base.IPluginFactory2
	registeredMu sync.Mutex
)

// Register makes f the module's factory, taking over the caller's
// reference. A previously registered factory is released.
func Register(f base.IPluginFactory2) {
	registeredMu.Lock()
	defer registeredMu.Unlock()
	registered.Release()
	registered = f
}

// Unregister releases the module's factory.
func Unregister() {
	registeredMu.Lock()
	defer registeredMu.Unlock()
	registered.Release()
}

// GetPluginFactory returns the registered factory with a reference added for
// the caller, or nil when none is registered. The pointer addresses a Go
// table; the bridge package wraps it for the C entry point.
func GetPluginFactory() unsafe.Pointer {
	registeredMu.Lock()
	defer registeredMu.Unlock()
	if registered.IsNil() {
		return nil
	}
	registered.AddRef()
	return registered.AsRaw()
}
