package base

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/justyntemme/vst3sys/pkg/framework/debug"
)

// exposure maps one served interface to the slot that serves it.
type exposure struct {
	info *InterfaceInfo
	slot unsafe.Pointer
}

// Object is the shared state of a composite: the reference count and the
// table of exposed interfaces. Embedding it gives the composite the
// FUnknownImpl methods. An Object must not be copied after Init.
type Object struct {
	refs      atomic.Uint32
	name      string
	exposed   []exposure
	identity  unsafe.Pointer
	onDestroy func()
}

var (
	// Objects are kept reachable while referenced so that a host holding
	// only interface pointers does not lose them.
	live   = make(map[*Object]string)
	liveMu sync.RWMutex
)

func registerObject(o *Object) {
	liveMu.Lock()
	defer liveMu.Unlock()
	live[o] = o.name
}

func unregisterObject(o *Object) {
	liveMu.Lock()
	defer liveMu.Unlock()
	delete(live, o)
}

// LiveObjects returns how many objects have been initialized and not yet
// destroyed.
func LiveObjects() int {
	liveMu.RLock()
	defer liveMu.RUnlock()
	return len(live)
}

// Init sets the reference count to one and registers the object as live.
// onDestroy, if set, runs once when the last reference is released.
func (o *Object) Init(name string, onDestroy func()) {
	o.name = name
	o.onDestroy = onDestroy
	o.refs.Store(1)
	registerObject(o)
}

// Expose makes the object answer queries for info, and for every interface
// info extends, with slot. The first exposed slot is the object's identity:
// it is what queries for FUnknown return.
func (o *Object) Expose(info *InterfaceInfo, slot unsafe.Pointer) {
	if info == nil || slot == nil {
		panic("base: Expose needs an interface and a slot")
	}
	o.exposed = append(o.exposed, exposure{info: info, slot: slot})
	if o.identity == nil {
		o.identity = slot
	}
}

// Identity returns the pointer FUnknown queries resolve to.
func (o *Object) Identity() unsafe.Pointer {
	return o.identity
}

// Name returns the name given to Init.
func (o *Object) Name() string {
	return o.name
}

// RefCount returns the current count. It is only meaningful when no other
// goroutine holds references.
func (o *Object) RefCount() uint32 {
	return o.refs.Load()
}

// Lookup returns the slot serving iid without adding a reference.
func (o *Object) Lookup(iid FUID) (unsafe.Pointer, bool) {
	if iid.Equal(FUnknownIID) {
		return o.identity, o.identity != nil
	}
	for _, e := range o.exposed {
		if e.info.Implements(iid) {
			return e.slot, true
		}
	}
	return nil, false
}

// QueryInterface implements FUnknownImpl.
func (o *Object) QueryInterface(iid *FUID, obj *unsafe.Pointer) TResult {
	if iid == nil || obj == nil {
		return KInvalidArgument
	}
	slot, ok := o.Lookup(*iid)
	if !ok {
		debug.Debug("%s: no interface %s", o.name, NameOf(*iid))
		return KNoInterface
	}
	o.AddRef()
	*obj = slot
	return KResultOk
}

// AddRef implements FUnknownImpl.
func (o *Object) AddRef() uint32 {
	return o.refs.Add(1)
}

// Release implements FUnknownImpl. The call that drops the count to zero
// runs the destroy hook before returning.
func (o *Object) Release() uint32 {
	for {
		n := o.refs.Load()
		if n == 0 {
			debug.Error("%s: release without a reference", o.name)
			return 0
		}
		if !o.refs.CompareAndSwap(n, n-1) {
			continue
		}
		if n == 1 {
			o.destroy()
		}
		return n - 1
	}
}

func (o *Object) destroy() {
	unregisterObject(o)
	debug.Debug("%s: destroyed", o.name)
	if o.onDestroy != nil {
		o.onDestroy()
	}
}
