package toolkit

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/introspect"
)

func TestCoerce(t *testing.T) {
	win, _ := LookupClass("GtkWindow")
	table, _ := LookupClass("GtkTable")
	btn, _ := LookupClass("GtkButton")
	xopts := introspect.Find(table.ChildProperties(), "x-options")

	tests := []struct {
		name  string
		param *introspect.Param
		in    any
		want  introspect.Value
	}{
		{"enum by name", win.Property("type"), "GTK_WINDOW_POPUP", introspect.EnumValue(1)},
		{"enum by nick", win.Property("window-position"), "center", introspect.EnumValue(1)},
		{"enum by number", win.Property("window-position"), 3, introspect.EnumValue(3)},
		{"flags string", win.Property("events"), "GDK_BUTTON_PRESS_MASK | key-press-mask", introspect.FlagsValue(1<<8 | 1<<10)},
		{"flags list", xopts, []any{"expand", "GTK_SHRINK"}, introspect.FlagsValue(1<<0 | 1<<1)},
		{"flags empty", xopts, "", introspect.FlagsValue(0)},
		{"flags number", xopts, float64(4), introspect.FlagsValue(4)},
		{"string", win.Property("title"), "Main", introspect.StringValue("Main")},
		{"null string", win.Property("title"), nil, introspect.NullString()},
		{"bool", win.Property("modal"), true, introspect.BoolValue(true)},
		{"bool string", win.Property("modal"), "false", introspect.BoolValue(false)},
		{"int from float64", win.Property("default-width"), float64(640), introspect.IntValue(640)},
		{"int from int64", win.Property("default-width"), int64(480), introspect.IntValue(480)},
		{"int from json.Number", win.Property("default-width"), json.Number("320"), introspect.IntValue(320)},
		{"int from string", win.Property("default-width"), " 12 ", introspect.IntValue(12)},
		{"null object", win.Property("screen"), nil, introspect.NullObject()},
		{"float", btn.Property("xalign"), 0.25, introspect.OtherValue(float32(0.25))},
		{"float from int", btn.Property("xalign"), 1, introspect.OtherValue(float32(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.param, tt.in)
			if err != nil {
				t.Fatalf("Coerce(%v) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Coerce(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCoerceErrors(t *testing.T) {
	win, _ := LookupClass("GtkWindow")

	tests := []struct {
		name  string
		param string
		in    any
		code  errors.Code
	}{
		{"unknown enum name", "type", "GTK_WINDOW_DIALOG", errors.ErrCodeUnknownEnum},
		{"unknown flag", "events", "GDK_NOPE_MASK", errors.ErrCodeUnknownEnum},
		{"fractional int", "default-width", 1.5, errors.ErrCodeTypeMismatch},
		{"int overflow", "default-width", int64(1) << 40, errors.ErrCodeTypeMismatch},
		{"string from int", "title", 7, errors.ErrCodeTypeMismatch},
		{"bool from junk", "modal", "maybe", errors.ErrCodeTypeMismatch},
		{"object from string", "screen", "@main", errors.ErrCodeTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(win.Property(tt.param), tt.in)
			if !errors.Is(err, tt.code) {
				t.Errorf("Coerce(%v) error = %v, want code %s", tt.in, err, tt.code)
			}
		})
	}
}

func TestExport(t *testing.T) {
	w := MustNew("GtkWindow")
	if err := w.SetAny("events", "exposure-mask|scroll-mask"); err != nil {
		t.Fatal(err)
	}
	got, _ := w.GetAny("events")
	names, ok := got.([]string)
	if !ok || len(names) != 2 || names[0] != "GDK_EXPOSURE_MASK" || names[1] != "GDK_SCROLL_MASK" {
		t.Errorf("GetAny(events) = %v", got)
	}

	typ, _ := w.GetAny("type")
	if typ != "GTK_WINDOW_TOPLEVEL" {
		t.Errorf("GetAny(type) = %v", typ)
	}
	title, _ := w.GetAny("title")
	if title != nil {
		t.Errorf("GetAny(title) = %v, want nil", title)
	}
	screen, _ := w.GetAny("screen")
	if screen != nil {
		t.Errorf("GetAny(screen) = %v, want nil", screen)
	}
}
