package base

import (
	"sync/atomic"
	"unsafe"
)

// Test interfaces. IBoundedCounter extends ICounter; IReader stands alone.
var (
	ICounterInfo        = Declare("ICounter", 0x5A1E0C37, 0x1B2D4E6F, 0x8899AABB, 0xCCDDEE01)
	IBoundedCounterInfo = Declare("IBoundedCounter", 0x5A1E0C37, 0x1B2D4E6F, 0x8899AABB, 0xCCDDEE02, ICounterInfo)
	IReaderInfo         = Declare("IReader", 0x5A1E0C37, 0x1B2D4E6F, 0x8899AABB, 0xCCDDEE03)
	testMarkerInfo      = DeclareMarker("ITestMarker", 0x5A1E0C37, 0x1B2D4E6F, 0x8899AABB, 0xCCDDEE04)
)

type ICounterVtbl struct {
	FUnknownVtbl
	Increment func(this unsafe.Pointer) int32
	Value     func(this unsafe.Pointer) int32
}

type IBoundedCounterVtbl struct {
	ICounterVtbl
	Limit func(this unsafe.Pointer) int32
}

type IReaderVtbl struct {
	FUnknownVtbl
	Read func(this unsafe.Pointer) int32
}

type boundedCounterImpl interface {
	FUnknownImpl
	Increment() int32
	Value() int32
	Limit() int32
}

type readerImpl interface {
	FUnknownImpl
	Read() int32
}

func newIBoundedCounterVtbl[T any, P interface {
	*T
	boundedCounterImpl
}](off Offset) IBoundedCounterVtbl {
	return IBoundedCounterVtbl{
		ICounterVtbl: ICounterVtbl{
			FUnknownVtbl: NewFUnknownVtbl[T, P](off),
			Increment: func(this unsafe.Pointer) (n int32) {
				defer recoverThunk("ICounter.increment", &n, -1)
				return P(Recover[T](this, off)).Increment()
			},
			Value: func(this unsafe.Pointer) (n int32) {
				defer recoverThunk("ICounter.value", &n, -1)
				return P(Recover[T](this, off)).Value()
			},
		},
		Limit: func(this unsafe.Pointer) (n int32) {
			defer recoverThunk("IBoundedCounter.limit", &n, -1)
			return P(Recover[T](this, off)).Limit()
		},
	}
}

func newIReaderVtbl[T any, P interface {
	*T
	readerImpl
}](off Offset) IReaderVtbl {
	return IReaderVtbl{
		FUnknownVtbl: NewFUnknownVtbl[T, P](off),
		Read: func(this unsafe.Pointer) (n int32) {
			defer recoverThunk("IReader.read", &n, -1)
			return P(Recover[T](this, off)).Read()
		},
	}
}

type ICounter struct{ Ptr }

func (ICounter) InterfaceInfo() *InterfaceInfo { return ICounterInfo }

func (c ICounter) Increment() int32 { return VtableOf[ICounterVtbl](c.raw).Increment(c.raw) }
func (c ICounter) Value() int32     { return VtableOf[ICounterVtbl](c.raw).Value(c.raw) }

type IBoundedCounter struct{ ICounter }

func (IBoundedCounter) InterfaceInfo() *InterfaceInfo { return IBoundedCounterInfo }

func (c IBoundedCounter) Limit() int32 { return VtableOf[IBoundedCounterVtbl](c.raw).Limit(c.raw) }

type IReader struct{ Ptr }

func (IReader) InterfaceInfo() *InterfaceInfo { return IReaderInfo }

func (r IReader) Read() int32 { return VtableOf[IReaderVtbl](r.raw).Read(r.raw) }

type testMarker struct{ Ptr }

func (testMarker) InterfaceInfo() *InterfaceInfo { return testMarkerInfo }

// counter serves IPluginBase, IBoundedCounter and IReader from three slots
// over one shared count.
type counter struct {
	plugin Slot[IPluginBaseVtbl]
	count  Slot[IBoundedCounterVtbl]
	reader Slot[IReaderVtbl]
	Object

	value     atomic.Int32
	limit     int32
	context   unsafe.Pointer
	panicInit bool
	panicRead bool
	destroyed atomic.Int32
}

var (
	counterPluginVtbl = NewIPluginBaseVtbl[counter](OffsetOf(unsafe.Offsetof(counter{}.plugin)))
	counterCountVtbl  = newIBoundedCounterVtbl[counter](OffsetOf(unsafe.Offsetof(counter{}.count)))
	counterReaderVtbl = newIReaderVtbl[counter](OffsetOf(unsafe.Offsetof(counter{}.reader)))
)

func newCounter(limit int32) *counter {
	c := &counter{limit: limit}
	c.plugin.Init(&counterPluginVtbl)
	c.count.Init(&counterCountVtbl)
	c.reader.Init(&counterReaderVtbl)
	c.Init("counter", func() { c.destroyed.Add(1) })
	c.Expose(IPluginBaseInfo, c.plugin.Raw())
	c.Expose(IBoundedCounterInfo, c.count.Raw())
	c.Expose(IReaderInfo, c.reader.Raw())
	return c
}

// newCounterHandle returns the counter along with the handle owning its
// creation reference.
func newCounterHandle(limit int32) (*counter, IPluginBase) {
	c := newCounter(limit)
	return c, FromRaw[IPluginBase](c.plugin.Raw())
}

func (c *counter) Initialize(context unsafe.Pointer) TResult {
	if c.panicInit {
		panic("initialize")
	}
	if c.context != nil {
		return KResultFalse
	}
	c.context = context
	return KResultOk
}

func (c *counter) Terminate() TResult {
	if c.context == nil {
		return KNotInitialized
	}
	c.context = nil
	return KResultOk
}

func (c *counter) Increment() int32 { return c.value.Add(1) }
func (c *counter) Value() int32     { return c.value.Load() }
func (c *counter) Limit() int32     { return c.limit }

func (c *counter) Read() int32 {
	if c.panicRead {
		panic("read")
	}
	return c.value.Load()
}

// liar reports success from every query without producing a pointer.
type liar struct {
	slot Slot[FUnknownVtbl]
	refs atomic.Int32
}

var liarVtbl = NewFUnknownVtbl[liar](0)

func newLiar() *liar {
	l := &liar{}
	l.slot.Init(&liarVtbl)
	l.refs.Store(1)
	return l
}

func (l *liar) QueryInterface(iid *FUID, obj *unsafe.Pointer) TResult { return KResultOk }
func (l *liar) AddRef() uint32                                        { return uint32(l.refs.Add(1)) }
func (l *liar) Release() uint32                                       { return uint32(l.refs.Add(-1)) }
