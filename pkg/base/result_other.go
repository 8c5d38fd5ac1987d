//go:build !windows

package base

// Result codes used by hosts on platforms without COM.
const (
	KNoInterface     TResult = -1
	KResultOk        TResult = 0
	KResultFalse     TResult = 1
	KInvalidArgument TResult = 2
	KNotImplemented  TResult = 3
	KInternalError   TResult = 4
	KNotInitialized  TResult = 5
	KOutOfMemory     TResult = 6
)
