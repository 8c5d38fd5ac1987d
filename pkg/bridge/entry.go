package bridge

import "C"

import (
	"unsafe"

	"github.com/justyntemme/vst3sys/pkg/base"
	"github.com/justyntemme/vst3sys/pkg/factory"
)

// GetPluginFactory is the module entry point a host resolves by name. It
// returns the registered factory behind a C IPluginFactory2 table, or nil
// when none is registered.
//
//export GetPluginFactory
func GetPluginFactory() unsafe.Pointer {
	raw := factory.GetPluginFactory()
	if raw == nil {
		return nil
	}
	return wrap(raw, base.IPluginFactory2Info.IID)
}
