package bridge

import (
	"errors"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/justyntemme/vst3sys/pkg/base"
	"github.com/justyntemme/vst3sys/pkg/factory"
	"github.com/justyntemme/vst3sys/pkg/framework/plugin"
)

// widget serves IPluginBase from its second slot so that calls arriving
// through C have to step back one word to reach the composite.
type widget struct {
	unknown base.Slot[base.FUnknownVtbl]
	plugin  base.Slot[base.IPluginBaseVtbl]
	base.Object

	context    unsafe.Pointer
	terminated bool
	panicInit  bool
}

var (
	widgetUnknownVtbl = base.NewFUnknownVtbl[widget](base.OffsetOf(unsafe.Offsetof(widget{}.unknown)))
	widgetPluginVtbl  = base.NewIPluginBaseVtbl[widget](base.OffsetOf(unsafe.Offsetof(widget{}.plugin)))
)

var (
	widgets   []*widget
	widgetsMu sync.Mutex
)

func newWidget() *widget {
	w := &widget{}
	w.unknown.Init(&widgetUnknownVtbl)
	w.plugin.Init(&widgetPluginVtbl)
	w.Init("widget", nil)
	w.Expose(base.FUnknownInfo, w.unknown.Raw())
	w.Expose(base.IPluginBaseInfo, w.plugin.Raw())

	widgetsMu.Lock()
	widgets = append(widgets, w)
	widgetsMu.Unlock()
	return w
}

func lastWidget() *widget {
	widgetsMu.Lock()
	defer widgetsMu.Unlock()
	return widgets[len(widgets)-1]
}

func createWidget() (base.FUnknown, error) {
	return base.FromRaw[base.FUnknown](newWidget().unknown.Raw()), nil
}

func (w *widget) Initialize(context unsafe.Pointer) base.TResult {
	if w.panicInit {
		panic("widget refused")
	}
	w.context = context
	return base.KResultOk
}

func (w *widget) Terminate() base.TResult {
	w.terminated = true
	return base.KResultOk
}

var widgetInfo = plugin.Info{
	ID:            "com.vst3sys.bridge.widget",
	Name:          "Widget",
	Vendor:        "vst3sys",
	Version:       "1.2.0",
	SubCategories: []string{"Fx"},
}

// registerFactory registers a one-class factory and returns the C pointer a
// host would get from the module entry point.
func registerFactory(t *testing.T) Factory {
	t.Helper()
	f, err := factory.New(base.NewPFactoryInfo("vst3sys", "https://github.com/justyntemme/vst3sys", "", base.Unicode),
		factory.Class{Info: widgetInfo, Create: createWidget})
	require.NoError(t, err)
	factory.Register(f)

	host := Factory{Adopt(GetPluginFactory())}
	require.False(t, host.IsNil())
	return host
}

func TestFactoryThroughC(t *testing.T) {
	live, proxied := base.LiveObjects(), LiveProxies()
	host := registerFactory(t)

	info, err := host.GetFactoryInfo()
	require.NoError(t, err)
	assert.Equal(t, "vst3sys", info.VendorString())
	assert.Equal(t, "https://github.com/justyntemme/vst3sys", info.URLString())
	assert.True(t, info.Flags.Has(base.Unicode))

	require.Equal(t, int32(1), host.CountClasses())

	ci, err := host.GetClassInfo(0)
	require.NoError(t, err)
	assert.Equal(t, widgetInfo.UID(), ci.ClassID())
	assert.Equal(t, "Widget", ci.NameString())

	ci2, err := host.GetClassInfo2(0)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", ci2.VersionString())
	assert.Equal(t, "Fx", ci2.SubCategoriesString())

	_, err = host.GetClassInfo2(1)
	code, _ := base.Code(err)
	assert.Equal(t, base.KInvalidArgument, code)

	host.Release()
	factory.Unregister()
	assert.Equal(t, proxied, LiveProxies())
	assert.Equal(t, live, base.LiveObjects())
}

func TestFactoryQueryThroughC(t *testing.T) {
	host := registerFactory(t)
	defer factory.Unregister()
	defer host.Release()

	u1, err := host.Query(base.FUnknownIID)
	require.NoError(t, err)
	defer u1.Release()
	u2, err := host.Query(base.FUnknownIID)
	require.NoError(t, err)
	defer u2.Release()
	assert.Equal(t, u1.Raw(), u2.Raw())

	f1, err := u1.Query(base.IPluginFactoryInfo.IID)
	require.NoError(t, err)
	defer f1.Release()
	assert.Equal(t, int32(1), Factory{f1}.CountClasses())

	_, err = host.Query(base.IPluginBaseInfo.IID)
	assert.True(t, errors.Is(err, base.ErrBadCast))
	code, _ := base.Code(err)
	assert.Equal(t, base.KNoInterface, code)
}

func TestCreateInstanceThroughC(t *testing.T) {
	live, proxied := base.LiveObjects(), LiveProxies()
	host := registerFactory(t)

	inst, err := host.CreateInstance(widgetInfo.UID(), base.IPluginBaseInfo.IID)
	require.NoError(t, err)
	w := lastWidget()
	p := PluginBase{inst}

	require.NoError(t, p.Initialize(host.Raw()))
	assert.Equal(t, host.Raw(), w.context)
	require.NoError(t, p.Terminate())
	assert.True(t, w.terminated)

	assert.Equal(t, uint32(2), p.AddRef())
	assert.Equal(t, uint32(1), p.Unknown.Release())

	id1, err := inst.Query(base.FUnknownIID)
	require.NoError(t, err)
	id2, err := inst.Query(base.FUnknownIID)
	require.NoError(t, err)
	assert.Equal(t, id1.Raw(), id2.Raw())
	assert.NotEqual(t, inst.Raw(), id1.Raw())

	again, err := id1.Query(base.IPluginBaseInfo.IID)
	require.NoError(t, err)
	assert.Equal(t, inst.Raw(), again.Raw())
	again.Release()

	_, err = inst.Query(base.IPluginFactoryInfo.IID)
	code, _ := base.Code(err)
	assert.Equal(t, base.KNoInterface, code)

	id1.Release()
	id2.Release()
	inst.Release()
	host.Release()
	factory.Unregister()
	assert.Equal(t, proxied, LiveProxies())
	assert.Equal(t, live, base.LiveObjects())
}

func TestCreateInstanceErrorsThroughC(t *testing.T) {
	host := registerFactory(t)
	defer factory.Unregister()
	defer host.Release()
	live, proxied := base.LiveObjects(), LiveProxies()

	_, err := host.CreateInstance(base.MustParseFUID("00000000-0000-0000-0000-000000000001"), base.IPluginBaseInfo.IID)
	code, _ := base.Code(err)
	assert.Equal(t, base.KNoInterface, code)

	_, err = host.CreateInstance(widgetInfo.UID(), base.IPluginFactoryInfo.IID)
	code, _ = base.Code(err)
	assert.Equal(t, base.KNoInterface, code)

	assert.Equal(t, live, base.LiveObjects())
	assert.Equal(t, proxied, LiveProxies())
}

func TestPanicStopsAtC(t *testing.T) {
	w := newWidget()
	pb := base.FromRaw[base.IPluginBase](w.plugin.Raw())
	defer pb.Release()
	w.panicInit = true

	c, err := Export(pb)
	require.NoError(t, err)
	p := PluginBase{Adopt(c)}
	defer p.Release()

	err = p.Initialize(nil)
	assert.True(t, errors.Is(err, base.ErrInitFailed))
	code, _ := base.Code(err)
	assert.Equal(t, base.KInternalError, code)
}

// soloInfo declares an interface the bridge has no table for.
var soloInfo = base.Declare("ISolo", 0x3C5A7E91, 0x0B2D4F61, 0x8A9BACBD, 0xCEDF0112)

type solo struct{ base.Ptr }

func (solo) InterfaceInfo() *base.InterfaceInfo { return soloInfo }

func TestExport(t *testing.T) {
	live := base.LiveObjects()
	w := newWidget()
	u := base.FromRaw[base.FUnknown](w.unknown.Raw())

	pb, err := base.Cast[base.IPluginBase](u)
	require.NoError(t, err)
	c, err := Export(pb)
	require.NoError(t, err)
	pb.Release()

	p := PluginBase{Adopt(c)}
	require.NoError(t, p.Initialize(nil))
	assert.Equal(t, uint32(2), w.RefCount())

	_, err = Export(solo{})
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = Export(base.IPluginBase{})
	assert.ErrorIs(t, err, base.ErrNullTarget)

	u.Release()
	assert.Equal(t, live+1, base.LiveObjects())
	p.Release()
	assert.Equal(t, live, base.LiveObjects())
}

func TestGetPluginFactoryUnregistered(t *testing.T) {
	factory.Unregister()
	assert.Nil(t, GetPluginFactory())
}

func TestConcurrentInstancesThroughC(t *testing.T) {
	live, proxied := base.LiveObjects(), LiveProxies()
	host := registerFactory(t)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			inst, err := host.CreateInstance(widgetInfo.UID(), base.IPluginBaseInfo.IID)
			if err != nil {
				return err
			}
			defer inst.Release()
			p := PluginBase{inst}
			if err := p.Initialize(nil); err != nil {
				return err
			}
			return p.Terminate()
		})
	}
	require.NoError(t, g.Wait())

	host.Release()
	factory.Unregister()
	assert.Equal(t, proxied, LiveProxies())
	assert.Equal(t, live, base.LiveObjects())
}
