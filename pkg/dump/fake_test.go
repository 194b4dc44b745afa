package dump

import "github.com/matzehuels/treedump/pkg/introspect"

// fakeWidget is a hand-built widget for exercising the traversal rules
// without a real toolkit.
type fakeWidget struct {
	class     string
	name      string
	params    []*introspect.Param
	values    map[string]introspect.Value
	children  []*fakeWidget
	parent    *fakeWidget
	composite bool
	container bool
	button    bool
	check     bool

	childParams []*introspect.Param         // packing params when acting as parent
	packing     map[string]introspect.Value // this widget's packing values
}

func newFake(class string, params ...*introspect.Param) *fakeWidget {
	return &fakeWidget{
		class:   class,
		params:  append([]*introspect.Param{pName}, params...),
		values:  map[string]introspect.Value{},
		packing: map[string]introspect.Value{},
	}
}

func (f *fakeWidget) set(name string, v introspect.Value) *fakeWidget {
	f.values[name] = v
	return f
}

func (f *fakeWidget) add(children ...*fakeWidget) *fakeWidget {
	f.container = true
	for _, c := range children {
		c.parent = f
		f.children = append(f.children, c)
	}
	return f
}

type fakeProvider struct{}

func fw(w introspect.Widget) *fakeWidget { return w.(*fakeWidget) }

func (fakeProvider) ClassName(w introspect.Widget) string { return fw(w).class }
func (fakeProvider) Name(w introspect.Widget) string      { return fw(w).name }
func (fakeProvider) Properties(w introspect.Widget) []*introspect.Param {
	return fw(w).params
}

func (fakeProvider) Value(w introspect.Widget, p *introspect.Param) introspect.Value {
	if v, ok := fw(w).values[p.Name]; ok {
		return v
	}
	return p.Default
}

func (fakeProvider) IsDefault(p *introspect.Param, v introspect.Value) bool { return p.Defaults(v) }
func (fakeProvider) IsContainer(w introspect.Widget) bool                   { return fw(w).container }

func (fakeProvider) Children(w introspect.Widget) []introspect.Widget {
	var out []introspect.Widget
	for _, c := range fw(w).children {
		out = append(out, c)
	}
	return out
}

func (fakeProvider) IsCompositeChild(w introspect.Widget) bool { return fw(w).composite }

func (fakeProvider) Parent(w introspect.Widget) introspect.Widget {
	if p := fw(w).parent; p != nil {
		return p
	}
	return nil
}

func (fakeProvider) IsContainerClass(w introspect.Widget) bool { return len(fw(w).childParams) > 0 }

func (fakeProvider) ChildProperties(w introspect.Widget) []*introspect.Param {
	return fw(w).childParams
}

func (fakeProvider) ChildValue(parent, child introspect.Widget, p *introspect.Param) introspect.Value {
	if v, ok := fw(child).packing[p.Name]; ok {
		return v
	}
	return p.Default
}

func (fakeProvider) IsButton(w introspect.Widget) bool      { return fw(w).button }
func (fakeProvider) IsCheckButton(w introspect.Widget) bool { return fw(w).check }

var (
	windowType = &introspect.EnumClass{Name: "GtkWindowType", Values: []introspect.EnumEntry{
		{Value: 0, Name: "GTK_WINDOW_TOPLEVEL", Nick: "toplevel"},
		{Value: 1, Name: "GTK_WINDOW_POPUP", Nick: "popup"},
	}}
	packType = &introspect.EnumClass{Name: "GtkPackType", Values: []introspect.EnumEntry{
		{Value: 0, Name: "GTK_PACK_START", Nick: "start"},
		{Value: 1, Name: "GTK_PACK_END", Nick: "end"},
	}}
	eventMask = &introspect.FlagsClass{Name: "GdkEventMask", Values: []introspect.FlagEntry{
		{Value: 1 << 1, Name: "GDK_EXPOSURE_MASK", Nick: "exposure-mask"},
		{Value: 1 << 2, Name: "GDK_POINTER_MOTION_MASK", Nick: "pointer-motion-mask"},
		{Value: 1 << 8, Name: "GDK_BUTTON_PRESS_MASK", Nick: "button-press-mask"},
		{Value: 1 << 9, Name: "GDK_BUTTON_RELEASE_MASK", Nick: "button-release-mask"},
	}}
)

func strParam(name string) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindString, Flags: introspect.ReadWrite, Default: introspect.NullString()}
}

func boolParam(name string, def bool) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindBool, Flags: introspect.ReadWrite, Default: introspect.BoolValue(def)}
}

func intParam(name string, def int) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindInt, Flags: introspect.ReadWrite, Default: introspect.IntValue(def)}
}

func int64Param(name string, def int64) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindInt64, Flags: introspect.ReadWrite, Default: introspect.Int64Value(def)}
}

func objParam(name string) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindObject, Flags: introspect.ReadWrite, Default: introspect.NullObject()}
}

var (
	pName     = strParam("name")
	pTitle    = strParam("title")
	pLabel    = strParam("label")
	pVisible  = boolParam("visible", false)
	pUseStock = boolParam("use-stock", false)
	pImage    = objParam("image")
	pMnemonic = objParam("mnemonic-widget")
	pWidth    = intParam("width-request", -1)
	pSerial   = int64Param("serial", 0)
	pType     = &introspect.Param{Name: "type", Kind: introspect.KindEnum, Flags: introspect.ReadWrite, Enum: windowType, Default: introspect.EnumValue(0)}
	pEvents   = &introspect.Param{Name: "events", Kind: introspect.KindFlags, Flags: introspect.ReadWrite, FlagSet: eventMask, Default: introspect.FlagsValue(0)}

	pExpand   = boolParam("expand", false)
	pPadding  = intParam("padding", 0)
	pPackType = &introspect.Param{Name: "pack-type", Kind: introspect.KindEnum, Flags: introspect.ReadWrite, Enum: packType, Default: introspect.EnumValue(0)}
)

func newWindow() *fakeWidget {
	w := newFake("GtkWindow", pType, pTitle, pVisible, pEvents, pWidth, pSerial)
	w.container = true
	w.childParams = []*introspect.Param{pExpand, pPadding, pPackType}
	return w
}

func newButton() *fakeWidget {
	b := newFake("GtkButton", pVisible, pLabel, pImage, pUseStock)
	b.container = true
	b.button = true
	return b
}

func newLabel() *fakeWidget {
	return newFake("GtkLabel", pVisible, pLabel, pMnemonic)
}
