package toolkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/introspect"
)

func TestNewUnknownClass(t *testing.T) {
	_, err := New("GtkSpinner")
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownClass), "got %v", err)
}

func TestWidgetIdentity(t *testing.T) {
	a, b := MustNew("GtkLabel"), MustNew("GtkLabel")
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Greater(t, b.ID(), a.ID())
	assert.True(t, strings.HasPrefix(a.String(), "GtkLabel#"))
}

func TestClassHierarchy(t *testing.T) {
	c, err := LookupClass("GtkCheckButton")
	require.NoError(t, err)
	assert.Equal(t, []string{"GtkCheckButton", "GtkToggleButton", "GtkButton", "GtkBin", "GtkContainer", "GtkWidget"}, c.Ancestry())
	assert.True(t, c.IsA("GtkButton"))
	assert.False(t, c.IsA("GtkLabel"))

	props := c.Properties()
	require.NotEmpty(t, props)
	assert.Equal(t, "name", props[0].Name)
	assert.Equal(t, "GtkWidget", props[0].Owner)
	assert.Equal(t, "GtkToggleButton", c.Property("active").Owner)

	box, _ := LookupClass("GtkHBox")
	assert.NotNil(t, introspect.Find(box.ChildProperties(), "pack-type"))
	assert.Contains(t, ClassNames(), "GtkTable")
}

func TestSetGet(t *testing.T) {
	w := MustNew("GtkWindow")
	require.NoError(t, w.Set("title", introspect.StringValue("Main")))
	v, err := w.Get("title")
	require.NoError(t, err)
	assert.Equal(t, "Main", v.Str)

	v, err = w.Get("resizable")
	require.NoError(t, err)
	assert.True(t, v.Bool, "unset properties read their default")
}

func TestSetErrors(t *testing.T) {
	w := MustNew("GtkWindow")
	tests := []struct {
		name  string
		prop  string
		value introspect.Value
		code  errors.Code
	}{
		{"unknown property", "colour", introspect.StringValue("red"), errors.ErrCodeUnknownProperty},
		{"kind mismatch", "title", introspect.IntValue(3), errors.ErrCodeTypeMismatch},
		{"unknown enum", "type", introspect.EnumValue(9), errors.ErrCodeUnknownEnum},
		{"unknown flags", "events", introspect.FlagsValue(1 << 40), errors.ErrCodeUnknownEnum},
		{"read only", "window", introspect.NullObject(), errors.ErrCodeInvalidInput},
		{"not a widget", "screen", introspect.ObjectValue("screen0"), errors.ErrCodeTypeMismatch},
		{"float type", "xalign", introspect.OtherValue(0.5), errors.ErrCodeUnknownProperty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.Set(tt.prop, tt.value)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}

	btn := MustNew("GtkButton")
	err := btn.Set("xalign", introspect.OtherValue(0.5))
	assert.True(t, errors.Is(err, errors.ErrCodeTypeMismatch), "float64 is not a float32: %v", err)
}

func TestGetUnreadable(t *testing.T) {
	_, err := MustNew("GtkVBox").Get("child")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestContainerOps(t *testing.T) {
	win := MustNew("GtkWindow")
	box := MustNew("GtkVBox")
	lbl := MustNew("GtkLabel")

	require.NoError(t, win.Add(box))
	require.NoError(t, box.Add(lbl))
	assert.Same(t, win, lbl.Toplevel())
	assert.Equal(t, []*Widget{lbl}, box.Children())

	err := lbl.Add(MustNew("GtkLabel"))
	assert.True(t, errors.Is(err, errors.ErrCodeNotContainer))

	err = win.Add(MustNew("GtkLabel"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "a bin holds one child")

	err = box.Add(win)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "cycle")

	err = MustNew("GtkHBox").Add(lbl)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "already parented")

	require.NoError(t, box.Remove(lbl))
	assert.Nil(t, lbl.Parent())
	assert.True(t, errors.Is(box.Remove(lbl), errors.ErrCodeNotFound))
}

func TestParentProperty(t *testing.T) {
	a, b := MustNew("GtkVBox"), MustNew("GtkHBox")
	lbl := MustNew("GtkLabel")
	require.NoError(t, lbl.Set("parent", introspect.ObjectValue(a)))
	assert.Same(t, a, lbl.Parent())

	require.NoError(t, lbl.SetAny("parent", b))
	assert.Same(t, b, lbl.Parent())
	assert.Empty(t, a.Children())

	v, err := lbl.Get("parent")
	require.NoError(t, err)
	assert.Equal(t, b, v.Object)

	require.NoError(t, lbl.SetAny("parent", nil))
	assert.Nil(t, lbl.Parent())
}

func TestChildProperties(t *testing.T) {
	box := MustNew("GtkHBox")
	a, b, c := MustNew("GtkLabel"), MustNew("GtkLabel"), MustNew("GtkLabel")
	for _, w := range []*Widget{a, b, c} {
		require.NoError(t, box.Add(w))
	}

	require.NoError(t, b.SetChildProperty("padding", introspect.IntValue(4)))
	v, err := b.ChildProperty("padding")
	require.NoError(t, err)
	assert.EqualValues(t, 4, v.Int)

	v, _ = c.ChildProperty("position")
	assert.EqualValues(t, 2, v.Int)

	require.NoError(t, c.SetChildAny("position", 0))
	assert.Equal(t, []*Widget{c, a, b}, box.Children())

	_, err = MustNew("GtkLabel").ChildProperty("padding")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "no parent")

	_, err = a.ChildProperty("left-attach")
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownProperty))

	require.NoError(t, box.Remove(b))
	require.NoError(t, box.Add(b))
	v, _ = b.ChildProperty("padding")
	assert.EqualValues(t, 0, v.Int, "packing resets when reparented")
}

func TestButtonContent(t *testing.T) {
	btn := MustNew("GtkButton")
	assert.Empty(t, btn.Children())

	require.NoError(t, btn.SetAny("label", "_Save"))
	require.Len(t, btn.Children(), 1)
	inner := btn.Children()[0]
	assert.Equal(t, "GtkLabel", inner.ClassName())
	got, _ := inner.GetAny("label")
	assert.Equal(t, "_Save", got)

	img := MustNew("GtkImage")
	require.NoError(t, btn.SetAny("image", img))
	assert.Equal(t, []*Widget{img}, btn.Children())
	assert.Nil(t, inner.Parent())

	require.NoError(t, btn.SetAny("image", nil))
	require.Len(t, btn.Children(), 1)
	assert.Equal(t, "GtkLabel", btn.Children()[0].ClassName())
	assert.Nil(t, img.Parent())

	require.NoError(t, btn.SetAny("label", "gtk-ok"))
	require.NoError(t, btn.SetAny("use-stock", true))
	got, _ = btn.Children()[0].GetAny("label")
	assert.Equal(t, "_OK", got)

	other := MustNew("GtkVBox")
	parented := MustNew("GtkImage")
	require.NoError(t, other.Add(parented))
	err := btn.SetAny("image", parented)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestComputedProperties(t *testing.T) {
	entry := MustNew("GtkEntry")
	require.NoError(t, entry.SetAny("text", "héllo"))
	n, _ := entry.GetAny("text-length")
	assert.Equal(t, 5, n)

	lbl := MustNew("GtkLabel")
	require.NoError(t, lbl.SetAny("label", "_Email"))
	k, _ := lbl.GetAny("mnemonic-keyval")
	assert.Equal(t, noMnemonic, k)
	require.NoError(t, lbl.SetAny("use-underline", true))
	k, _ = lbl.GetAny("mnemonic-keyval")
	assert.Equal(t, int('e'), k)

	lbl.SetCompositeChild(true)
	c, _ := lbl.GetAny("composite-child")
	assert.Equal(t, true, c)
}

func TestNameHelpers(t *testing.T) {
	w := MustNew("GtkLabel")
	assert.Equal(t, "", w.Name())
	require.NoError(t, w.SetName("greeting"))
	assert.Equal(t, "greeting", w.Name())
}
