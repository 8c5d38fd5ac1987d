package base

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestVtableLayout(t *testing.T) {
	tests := []struct {
		name  string
		got   uintptr
		words uintptr
	}{
		{"FUnknown.queryInterface", unsafe.Offsetof(FUnknownVtbl{}.QueryInterface), 0},
		{"FUnknown.addRef", unsafe.Offsetof(FUnknownVtbl{}.AddRef), 1},
		{"FUnknown.release", unsafe.Offsetof(FUnknownVtbl{}.Release), 2},
		{"IPluginBase.initialize", unsafe.Offsetof(IPluginBaseVtbl{}.Initialize), 3},
		{"IPluginBase.terminate", unsafe.Offsetof(IPluginBaseVtbl{}.Terminate), 4},
		{"IPluginFactory.getFactoryInfo", unsafe.Offsetof(IPluginFactoryVtbl{}.GetFactoryInfo), 3},
		{"IPluginFactory.createInstance", unsafe.Offsetof(IPluginFactoryVtbl{}.CreateInstance), 6},
		{"IPluginFactory2.getClassInfo2", unsafe.Offsetof(IPluginFactory2Vtbl{}.GetClassInfo2), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.words*PtrSize, tt.got)
		})
	}

	assert.Equal(t, 5*PtrSize, unsafe.Sizeof(IPluginBaseVtbl{}))
	assert.Equal(t, 8*PtrSize, unsafe.Sizeof(IPluginFactory2Vtbl{}))
}

func TestVtablePrefix(t *testing.T) {
	c := newCounter(0)
	defer c.Release()

	raw := c.count.Raw()
	full := VtableOf[IBoundedCounterVtbl](raw)
	assert.Equal(t, unsafe.Pointer(&counterCountVtbl), unsafe.Pointer(full))
	assert.Equal(t, unsafe.Pointer(full), unsafe.Pointer(VtableOf[ICounterVtbl](raw)))
	assert.Equal(t, unsafe.Pointer(full), unsafe.Pointer(VtableOf[FUnknownVtbl](raw)))

	// Calling through a prefix view reaches the same object.
	prefix := VtableOf[ICounterVtbl](raw)
	prefix.Increment(raw)
	assert.Equal(t, int32(1), full.Value(raw))
	assert.Equal(t, int32(0), full.Limit(raw))
}

func TestOffsets(t *testing.T) {
	assert.Equal(t, Offset(0), OffsetOf(unsafe.Offsetof(counter{}.plugin)))
	assert.Equal(t, Offset(1), OffsetOf(unsafe.Offsetof(counter{}.count)))
	assert.Equal(t, Offset(2), OffsetOf(unsafe.Offsetof(counter{}.reader)))
	assert.Equal(t, 2*PtrSize, Offset(2).Bytes())
	assert.Panics(t, func() { OffsetOf(PtrSize + 1) })
}

func TestRecover(t *testing.T) {
	c := newCounter(0)
	defer c.Release()

	assert.Same(t, c, Recover[counter](c.plugin.Raw(), 0))
	assert.Same(t, c, Recover[counter](c.count.Raw(), 1))
	assert.Same(t, c, Recover[counter](c.reader.Raw(), 2))
	assert.Same(t, &counterReaderVtbl, c.reader.Vtbl())
}
