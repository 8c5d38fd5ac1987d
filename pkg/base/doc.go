// Package base implements the VST3 object model: 16-byte interface
// identifiers, dispatch tables that begin with the FUnknown entries,
// reference-counted interface handles and the machinery used to build
// objects that expose several interfaces from one allocation.
//
// A handle type such as IPluginBase embeds Ptr, which holds the address of
// the object's vtable pointer for that interface. Handles are owned: every
// handle obtained from FromRaw, Query, Cast or Clone carries one reference
// and must be released exactly once with Release. Borrow produces a view
// that carries no reference.
//
// Objects are implemented as composite structs. Each interface the object
// serves gets a Slot field; the first word of the slot points at a vtable
// built with New<Interface>Vtbl, and the Offset passed to that constructor
// is the slot's position inside the composite in pointer-sized words:
//
//	type widget struct {
//		plugin base.Slot[base.IPluginBaseVtbl]
//		base.Object
//	}
//
//	var widgetVtbl = base.NewIPluginBaseVtbl[widget](base.OffsetOf(unsafe.Offsetof(widget{}.plugin)))
//
// Passing the wrong offset corrupts memory. There is no runtime check.
//
// Table entries are Go func values, so these tables are dispatched from Go
// only. Package bridge wraps objects in C tables for C callers.
package base
