//go:build windows

package base

// Result codes are HRESULT values on Windows.
const (
	KNoInterface     TResult = -2147467262 // E_NOINTERFACE
	KResultOk        TResult = 0           // S_OK
	KResultFalse     TResult = 1           // S_FALSE
	KInvalidArgument TResult = -2147024809 // E_INVALIDARG
	KNotImplemented  TResult = -2147467263 // E_NOTIMPL
	KInternalError   TResult = -2147467259 // E_FAIL
	KNotInitialized  TResult = -2147418113 // E_UNEXPECTED
	KOutOfMemory     TResult = -2147024882 // E_OUTOFMEMORY
)
