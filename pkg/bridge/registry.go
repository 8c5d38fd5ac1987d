package bridge

/*
#include "bridge.h"
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/justyntemme/vst3sys/pkg/base"
	"github.com/justyntemme/vst3sys/pkg/framework/debug"
)

// ErrUnsupported is returned by Export for interfaces without a C table.
var ErrUnsupported = errors.New("bridge: interface has no C table")

// kinds selects the C table serving each interface.
var kinds = map[base.FUID]C.int{
	base.FUnknownIID:             C.VST3SYS_FUNKNOWN,
	base.IPluginBaseInfo.IID:     C.VST3SYS_PLUGINBASE,
	base.IPluginFactoryInfo.IID:  C.VST3SYS_FACTORY,
	base.IPluginFactory2Info.IID: C.VST3SYS_FACTORY2,
}

// Supports reports whether iid can be handed across the boundary.
func Supports(iid base.FUID) bool {
	_, ok := kinds[iid]
	return ok
}

type proxyKey struct {
	iface unsafe.Pointer
	iid   base.FUID
}

// proxy is the Go half of one C object. It owns one reference on iface.
type proxy struct {
	id   uintptr
	key  proxyKey
	refs uint32
	cobj *C.vst3sys_object
}

var (
	proxies   = make(map[uintptr]*proxy)
	byKey     = make(map[proxyKey]*proxy)
	proxiesMu sync.Mutex
	nextID    uintptr = 1
)

// LiveProxies returns how many C objects are currently allocated.
func LiveProxies() int {
	proxiesMu.Lock()
	defer proxiesMu.Unlock()
	return len(proxies)
}

// wrap takes over the reference held on iface and returns a C object for iid
// carrying one reference. An interface pointer already wrapped for iid gets
// the same C object again, so FUnknown queries keep a stable identity. wrap
// returns nil, releasing iface, when iid has no table or allocation fails.
func wrap(iface unsafe.Pointer, iid base.FUID) unsafe.Pointer {
	kind, ok := kinds[iid]
	if !ok || iface == nil {
		goRelease(iface)
		return nil
	}

	key := proxyKey{iface: iface, iid: iid}
	proxiesMu.Lock()
	if p, ok := byKey[key]; ok {
		p.refs++
		proxiesMu.Unlock()
		goRelease(iface)
		return unsafe.Pointer(p.cobj)
	}

	id := nextID
	cobj := C.vst3sys_object_new(kind, C.uintptr_t(id))
	if cobj == nil {
		proxiesMu.Unlock()
		goRelease(iface)
		return nil
	}
	nextID++
	p := &proxy{id: id, key: key, refs: 1, cobj: cobj}
	proxies[id] = p
	byKey[key] = p
	proxiesMu.Unlock()

	debug.Debug("bridge: %s exported as #%d", base.NameOf(iid), id)
	return unsafe.Pointer(cobj)
}

// lookup returns the Go interface pointer behind a C object id.
func lookup(id C.uintptr_t) (unsafe.Pointer, bool) {
	proxiesMu.Lock()
	defer proxiesMu.Unlock()
	p, ok := proxies[uintptr(id)]
	if !ok {
		return nil, false
	}
	return p.key.iface, true
}

func addRef(id C.uintptr_t) uint32 {
	proxiesMu.Lock()
	defer proxiesMu.Unlock()
	p, ok := proxies[uintptr(id)]
	if !ok {
		return 0
	}
	p.refs++
	return p.refs
}

// release drops one reference. The last one frees the C object and gives up
// the Go reference it held.
func release(id C.uintptr_t) uint32 {
	proxiesMu.Lock()
	p, ok := proxies[uintptr(id)]
	debug.ErrorIf(!ok, "bridge: release of unknown object #%d", uintptr(id))
	if !ok {
		proxiesMu.Unlock()
		return 0
	}
	p.refs--
	n := p.refs
	if n == 0 {
		delete(proxies, p.id)
		delete(byKey, p.key)
	}
	proxiesMu.Unlock()

	if n == 0 {
		C.vst3sys_object_free(p.cobj)
		goRelease(p.key.iface)
		debug.Debug("bridge: #%d freed", p.id)
	}
	return n
}

func goRelease(iface unsafe.Pointer) {
	if iface != nil {
		base.VtableOf[base.FUnknownVtbl](iface).Release(iface)
	}
}

// Export returns a C object serving src's interface with one reference owned
// by the caller. src keeps its own reference.
func Export(src base.Interface) (unsafe.Pointer, error) {
	info := src.InterfaceInfo()
	if !Supports(info.IID) {
		return nil, ErrUnsupported
	}
	var raw unsafe.Pointer
	if err := base.Query(src, &info.IID, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, base.ErrNullTarget
	}
	c := wrap(raw, info.IID)
	if c == nil {
		return nil, &base.ResultError{Kind: base.ErrCallFailed, Op: "bridge.export " + info.Name, Code: base.KOutOfMemory}
	}
	return c, nil
}
