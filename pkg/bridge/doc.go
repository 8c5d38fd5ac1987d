// Package bridge gives Go interface objects C-callable tables.
//
// The tables built by the base package hold Go func values and can only be
// dispatched from Go. A host loading the module calls through C function
// pointers, so every object handed across the boundary is wrapped in a small
// C object whose table entries are C functions. Each entry forwards to an
// exported Go function, which looks the object up by id and calls the Go
// table of the interface it wraps. The C object stores an integer id and
// never a Go pointer.
//
// The bridge covers FUnknown, IPluginBase, IPluginFactory and
// IPluginFactory2. Reference counts returned through a C table are those of
// the wrapper: each wrapper holds one reference on the Go object and drops it
// when its own count reaches zero.
package bridge
