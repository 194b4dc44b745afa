package toolkit

import "github.com/matzehuels/treedump/pkg/introspect"

// Enum types.
var (
	WindowType = &introspect.EnumClass{Name: "GtkWindowType", Values: []introspect.EnumEntry{
		{Value: 0, Name: "GTK_WINDOW_TOPLEVEL", Nick: "toplevel"},
		{Value: 1, Name: "GTK_WINDOW_POPUP", Nick: "popup"},
	}}
	WindowPosition = &introspect.EnumClass{Name: "GtkWindowPosition", Values: []introspect.EnumEntry{
		{Value: 0, Name: "GTK_WIN_POS_NONE", Nick: "none"},
		{Value: 1, Name: "GTK_WIN_POS_CENTER", Nick: "center"},
		{Value: 2, Name: "GTK_WIN_POS_MOUSE", Nick: "mouse"},
		{Value: 3, Name: "GTK_WIN_POS_CENTER_ALWAYS", Nick: "center-always"},
		{Value: 4, Name: "GTK_WIN_POS_CENTER_ON_PARENT", Nick: "center-on-parent"},
	}}
	ResizeMode = &introspect.EnumClass{Name: "GtkResizeMode", Values: []introspect.EnumEntry{
		{Value: 0, Name: "GTK_RESIZE_PARENT", Nick: "parent"},
		{Value: 1, Name: "GTK_RESIZE_QUEUE", Nick: "queue"},
		{Value: 2, Name: "GTK_RESIZE_IMMEDIATE", Nick: "immediate"},
	}}
	ReliefStyle = &introspect.EnumClass{Name: "GtkReliefStyle", Values: []introspect.EnumEntry{
		{Value: 0, Name: "GTK_RELIEF_NORMAL", Nick: "normal"},
		{Value: 1, Name: "GTK_RELIEF_HALF", Nick: "half"},
		{Value: 2, Name: "GTK_RELIEF_NONE", Nick: "none"},
	}}
	PackType = &introspect.EnumClass{Name: "GtkPackType", Values: []introspect.EnumEntry{
		{Value: 0, Name: "GTK_PACK_START", Nick: "start"},
		{Value: 1, Name: "GTK_PACK_END", Nick: "end"},
	}}
	Justification = &introspect.EnumClass{Name: "GtkJustification", Values: []introspect.EnumEntry{
		{Value: 0, Name: "GTK_JUSTIFY_LEFT", Nick: "left"},
		{Value: 1, Name: "GTK_JUSTIFY_RIGHT", Nick: "right"},
		{Value: 2, Name: "GTK_JUSTIFY_CENTER", Nick: "center"},
		{Value: 3, Name: "GTK_JUSTIFY_FILL", Nick: "fill"},
	}}
)

// Flags types.
var (
	EventMask = &introspect.FlagsClass{Name: "GdkEventMask", Values: []introspect.FlagEntry{
		{Value: 1 << 1, Name: "GDK_EXPOSURE_MASK", Nick: "exposure-mask"},
		{Value: 1 << 2, Name: "GDK_POINTER_MOTION_MASK", Nick: "pointer-motion-mask"},
		{Value: 1 << 3, Name: "GDK_POINTER_MOTION_HINT_MASK", Nick: "pointer-motion-hint-mask"},
		{Value: 1 << 4, Name: "GDK_BUTTON_MOTION_MASK", Nick: "button-motion-mask"},
		{Value: 1 << 8, Name: "GDK_BUTTON_PRESS_MASK", Nick: "button-press-mask"},
		{Value: 1 << 9, Name: "GDK_BUTTON_RELEASE_MASK", Nick: "button-release-mask"},
		{Value: 1 << 10, Name: "GDK_KEY_PRESS_MASK", Nick: "key-press-mask"},
		{Value: 1 << 11, Name: "GDK_KEY_RELEASE_MASK", Nick: "key-release-mask"},
		{Value: 1 << 12, Name: "GDK_ENTER_NOTIFY_MASK", Nick: "enter-notify-mask"},
		{Value: 1 << 13, Name: "GDK_LEAVE_NOTIFY_MASK", Nick: "leave-notify-mask"},
		{Value: 1 << 14, Name: "GDK_FOCUS_CHANGE_MASK", Nick: "focus-change-mask"},
		{Value: 1 << 21, Name: "GDK_SCROLL_MASK", Nick: "scroll-mask"},
	}}
	AttachOptions = &introspect.FlagsClass{Name: "GtkAttachOptions", Values: []introspect.FlagEntry{
		{Value: 1 << 0, Name: "GTK_EXPAND", Nick: "expand"},
		{Value: 1 << 1, Name: "GTK_SHRINK", Nick: "shrink"},
		{Value: 1 << 2, Name: "GTK_FILL", Nick: "fill"},
	}}
)

// Param constructors.

func strProp(name string, flags introspect.ParamFlags) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindString, Flags: flags, Default: introspect.NullString()}
}

func textProp(name string) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindString, Flags: introspect.ReadWrite, Default: introspect.StringValue("")}
}

func boolProp(name string, def bool) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindBool, Flags: introspect.ReadWrite, Default: introspect.BoolValue(def)}
}

func intProp(name string, def int, flags introspect.ParamFlags) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindInt, Flags: flags, Default: introspect.IntValue(def)}
}

func enumProp(name string, class *introspect.EnumClass, def int64, flags introspect.ParamFlags) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindEnum, Flags: flags, Enum: class, Default: introspect.EnumValue(def)}
}

func flagsProp(name string, class *introspect.FlagsClass, def uint64) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindFlags, Flags: introspect.ReadWrite, FlagSet: class, Default: introspect.FlagsValue(def)}
}

func objectProp(name string, flags introspect.ParamFlags) *introspect.Param {
	return &introspect.Param{Name: name, Kind: introspect.KindObject, Flags: flags, Default: introspect.NullObject()}
}

// floatProp is a float32 property. Floats have no dedicated kind and are
// carried as KindOther.
func floatProp(name string, def float32) *introspect.Param {
	return &introspect.Param{
		Name:    name,
		Kind:    introspect.KindOther,
		Flags:   introspect.ReadWrite,
		Default: introspect.OtherValue(def),
		Equal:   floatEqual,
	}
}

func floatEqual(a, b any) bool {
	x, ok1 := a.(float32)
	y, ok2 := b.(float32)
	return ok1 && ok2 && x == y
}

const (
	rw        = introspect.ReadWrite
	readOnly  = introspect.Readable
	writeOnly = introspect.Writable
	construct = introspect.ReadWrite | introspect.Construct
)

// noMnemonic is the keyval of a label without a mnemonic (GDK_VoidSymbol).
const noMnemonic = 0xffffff

func init() {
	register("GtkWidget", "", []*introspect.Param{
		strProp("name", rw),
		objectProp("parent", rw),
		intProp("width-request", -1, rw),
		intProp("height-request", -1, rw),
		boolProp("visible", false),
		boolProp("sensitive", true),
		boolProp("app-paintable", false),
		boolProp("can-focus", false),
		boolProp("has-focus", false),
		boolProp("is-focus", false),
		boolProp("can-default", false),
		boolProp("has-default", false),
		boolProp("receives-default", false),
		{Name: "composite-child", Kind: introspect.KindBool, Flags: readOnly, Default: introspect.BoolValue(false)},
		objectProp("style", rw),
		flagsProp("events", EventMask, 0),
		boolProp("no-show-all", false),
		strProp("tooltip-text", rw),
		objectProp("window", readOnly),
	})
	register("GtkContainer", "GtkWidget", []*introspect.Param{
		intProp("border-width", 0, rw),
		enumProp("resize-mode", ResizeMode, 0, rw),
		objectProp("child", writeOnly),
	})
	register("GtkBin", "GtkContainer", nil)
	register("GtkWindow", "GtkBin", []*introspect.Param{
		enumProp("type", WindowType, 0, construct|introspect.ConstructOnly),
		strProp("title", rw),
		strProp("role", rw),
		boolProp("allow-shrink", false),
		boolProp("allow-grow", true),
		boolProp("resizable", true),
		boolProp("modal", false),
		enumProp("window-position", WindowPosition, 0, rw),
		intProp("default-width", -1, rw),
		intProp("default-height", -1, rw),
		boolProp("destroy-with-parent", false),
		strProp("icon-name", rw),
		objectProp("screen", rw),
		boolProp("decorated", true),
		boolProp("deletable", true),
	})
	register("GtkBox", "GtkContainer", []*introspect.Param{
		intProp("spacing", 0, rw),
		boolProp("homogeneous", false),
	},
		boolProp("expand", true),
		boolProp("fill", true),
		intProp("padding", 0, rw),
		enumProp("pack-type", PackType, 0, rw),
		intProp("position", 0, rw),
	)
	register("GtkHBox", "GtkBox", nil)
	register("GtkVBox", "GtkBox", nil)
	register("GtkTable", "GtkContainer", []*introspect.Param{
		intProp("n-rows", 1, rw),
		intProp("n-columns", 1, rw),
		intProp("row-spacing", 0, rw),
		intProp("column-spacing", 0, rw),
		boolProp("homogeneous", false),
	},
		intProp("left-attach", 0, rw),
		intProp("right-attach", 1, rw),
		intProp("top-attach", 0, rw),
		intProp("bottom-attach", 1, rw),
		flagsProp("x-options", AttachOptions, 1<<0|1<<2),
		flagsProp("y-options", AttachOptions, 1<<0|1<<2),
		intProp("x-padding", 0, rw),
		intProp("y-padding", 0, rw),
	)
	register("GtkButton", "GtkBin", []*introspect.Param{
		strProp("label", construct),
		objectProp("image", rw),
		enumProp("relief", ReliefStyle, 0, rw),
		boolProp("use-underline", false),
		boolProp("use-stock", false),
		boolProp("focus-on-click", true),
		floatProp("xalign", 0.5),
		floatProp("yalign", 0.5),
	})
	register("GtkToggleButton", "GtkButton", []*introspect.Param{
		boolProp("active", false),
		boolProp("inconsistent", false),
		boolProp("draw-indicator", false),
	})
	register("GtkCheckButton", "GtkToggleButton", nil)
	register("GtkLabel", "GtkWidget", []*introspect.Param{
		floatProp("xalign", 0.5),
		floatProp("yalign", 0.5),
		intProp("xpad", 0, rw),
		intProp("ypad", 0, rw),
		textProp("label"),
		boolProp("use-markup", false),
		boolProp("use-underline", false),
		enumProp("justify", Justification, 0, rw),
		boolProp("wrap", false),
		boolProp("selectable", false),
		intProp("mnemonic-keyval", noMnemonic, readOnly),
		objectProp("mnemonic-widget", rw),
		intProp("width-chars", -1, rw),
		intProp("max-width-chars", -1, rw),
		boolProp("single-line-mode", false),
	})
	register("GtkEntry", "GtkWidget", []*introspect.Param{
		textProp("text"),
		intProp("text-length", 0, readOnly),
		intProp("max-length", 0, rw),
		boolProp("visibility", true),
		boolProp("has-frame", true),
		intProp("invisible-char", '*', rw),
		boolProp("activates-default", false),
		intProp("width-chars", -1, rw),
		boolProp("editable", true),
		floatProp("xalign", 0),
	})
	register("GtkImage", "GtkWidget", []*introspect.Param{
		strProp("file", rw),
		strProp("stock", rw),
		strProp("icon-name", rw),
		intProp("icon-size", 4, rw),
		intProp("pixel-size", -1, rw),
	})
}
