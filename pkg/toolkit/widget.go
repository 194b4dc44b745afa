package toolkit

import (
	"fmt"
	"slices"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/introspect"
)

var lastID atomic.Uint64

// Widget is a node of the widget tree. The zero value is not usable; create
// widgets with [New].
type Widget struct {
	id        uint64
	class     *Class
	values    map[string]introspect.Value
	parent    *Widget
	children  []*Widget
	packing   map[string]introspect.Value
	composite bool

	// content is the child a button manages itself: its internal label or
	// its image.
	content *Widget
}

// New creates a widget of the named class.
func New(class string) (*Widget, error) {
	c, err := LookupClass(class)
	if err != nil {
		return nil, err
	}
	return &Widget{
		id:      lastID.Add(1),
		class:   c,
		values:  make(map[string]introspect.Value),
		packing: make(map[string]introspect.Value),
	}, nil
}

// MustNew is like New but panics on an unknown class.
func MustNew(class string) *Widget {
	w, err := New(class)
	if err != nil {
		panic(err)
	}
	return w
}

// ID returns the process-unique id of w. Ids are never reused.
func (w *Widget) ID() uint64 { return w.id }

func (w *Widget) Class() *Class     { return w.class }
func (w *Widget) ClassName() string { return w.class.Name }

func (w *Widget) String() string { return fmt.Sprintf("%s#%d", w.class.Name, w.id) }

// Name returns the widget name, or "" when unset.
func (w *Widget) Name() string {
	v := w.values["name"]
	if v.Kind != introspect.KindString || v.Null {
		return ""
	}
	return v.Str
}

// SetName sets the widget name.
func (w *Widget) SetName(name string) error {
	return w.Set("name", introspect.StringValue(name))
}

func (w *Widget) Parent() *Widget { return w.parent }

// Children returns a copy of the child list, internal children included.
func (w *Widget) Children() []*Widget { return slices.Clone(w.children) }

// Toplevel returns the root of the tree containing w.
func (w *Widget) Toplevel() *Widget {
	t := w
	for t.parent != nil {
		t = t.parent
	}
	return t
}

func (w *Widget) IsContainer() bool { return w.class.IsA("GtkContainer") }

// SetCompositeChild marks w as an internal part of its parent.
func (w *Widget) SetCompositeChild(composite bool) { w.composite = composite }

func (w *Widget) IsCompositeChild() bool { return w.composite }

func (w *Widget) param(name string) (*introspect.Param, error) {
	p := w.class.Property(name)
	if p == nil {
		return nil, errors.New(errors.ErrCodeUnknownProperty, "%s has no property %q", w.class.Name, name)
	}
	return p, nil
}

// Get returns the current value of the named property.
func (w *Widget) Get(name string) (introspect.Value, error) {
	p, err := w.param(name)
	if err != nil {
		return introspect.Value{}, err
	}
	if !p.Readable() {
		return introspect.Value{}, errors.New(errors.ErrCodeInvalidInput, "property %q of %s is not readable", name, w.class.Name)
	}
	return w.value(p), nil
}

// value returns the value of p without access checks.
func (w *Widget) value(p *introspect.Param) introspect.Value {
	switch p.Name {
	case "parent":
		if w.parent == nil {
			return introspect.NullObject()
		}
		return introspect.ObjectValue(w.parent)
	case "composite-child":
		return introspect.BoolValue(w.composite)
	case "text-length":
		return introspect.IntValue(utf8.RuneCountInString(w.values["text"].Str))
	case "mnemonic-keyval":
		return introspect.IntValue(w.mnemonicKeyval())
	}
	if v, ok := w.values[p.Name]; ok {
		return v
	}
	return p.Default
}

func (w *Widget) mnemonicKeyval() int {
	if !w.values["use-underline"].Bool {
		return noMnemonic
	}
	text := w.values["label"].Str
	for i := 0; i < len(text)-1; i++ {
		if text[i] != '_' {
			continue
		}
		if text[i+1] == '_' {
			i++
			continue
		}
		r, _ := utf8.DecodeRuneInString(text[i+1:])
		return int(unicode.ToLower(r))
	}
	return noMnemonic
}

// Set assigns the named property. The value kind must match the property
// kind; use [Widget.SetAny] for loose input.
func (w *Widget) Set(name string, v introspect.Value) error {
	p, err := w.param(name)
	if err != nil {
		return err
	}
	if !p.Writable() {
		return errors.New(errors.ErrCodeInvalidInput, "property %q of %s is not writable", name, w.class.Name)
	}
	v, err = validate(p, v)
	if err != nil {
		return fmt.Errorf("set %s.%s: %w", w, name, err)
	}

	switch name {
	case "parent":
		return w.setParent(v)
	case "child":
		child, _ := v.Object.(*Widget)
		if child == nil {
			return errors.New(errors.ErrCodeInvalidInput, "set %s.child: nil widget", w)
		}
		return w.Add(child)
	case "image":
		img, _ := v.Object.(*Widget)
		if img == nil {
			break
		}
		if img.parent != nil && img.parent != w {
			return errors.New(errors.ErrCodeInvalidInput, "set %s.image: %s already has parent %s", w, img, img.parent)
		}
		for a := w; a != nil; a = a.parent {
			if a == img {
				return errors.New(errors.ErrCodeInvalidInput, "set %s.image: would create a cycle", w)
			}
		}
	}

	w.values[name] = v
	if w.class.IsA("GtkButton") {
		switch name {
		case "label", "image", "use-stock", "use-underline":
			w.syncButton()
		}
	}
	return nil
}

func (w *Widget) setParent(v introspect.Value) error {
	parent, _ := v.Object.(*Widget)
	if parent == w.parent {
		return nil
	}
	if w.parent != nil {
		if err := w.parent.Remove(w); err != nil {
			return err
		}
	}
	if parent == nil {
		return nil
	}
	return parent.Add(w)
}

// validate checks v against the declared type of p and normalizes typed
// nil widgets to the null object.
func validate(p *introspect.Param, v introspect.Value) (introspect.Value, error) {
	if v.Kind != p.Kind {
		return v, errors.New(errors.ErrCodeTypeMismatch, "want %s value, got %s", p.Kind, v.Kind)
	}
	switch p.Kind {
	case introspect.KindEnum:
		if _, ok := p.Enum.Lookup(v.Int); !ok {
			return v, errors.New(errors.ErrCodeUnknownEnum, "%s has no value %d", p.Enum.Name, v.Int)
		}
	case introspect.KindFlags:
		var all uint64
		for _, f := range p.FlagSet.Values {
			all |= f.Value
		}
		if v.Bits&^all != 0 {
			return v, errors.New(errors.ErrCodeUnknownEnum, "%s has no flags %#x", p.FlagSet.Name, v.Bits&^all)
		}
	case introspect.KindObject:
		if v.Object == nil {
			return v, nil
		}
		child, ok := v.Object.(*Widget)
		if !ok {
			return v, errors.New(errors.ErrCodeTypeMismatch, "want widget, got %T", v.Object)
		}
		if child == nil {
			return introspect.NullObject(), nil
		}
	case introspect.KindOther:
		if _, ok := v.Other.(float32); !ok {
			return v, errors.New(errors.ErrCodeTypeMismatch, "want float32, got %T", v.Other)
		}
	}
	return v, nil
}

// Add appends child to the children of w.
func (w *Widget) Add(child *Widget) error {
	if child == nil {
		return errors.New(errors.ErrCodeInvalidInput, "add to %s: nil widget", w)
	}
	if !w.IsContainer() {
		return errors.New(errors.ErrCodeNotContainer, "%s is not a container", w)
	}
	if child.parent != nil {
		return errors.New(errors.ErrCodeInvalidInput, "add %s to %s: already a child of %s", child, w, child.parent)
	}
	for a := w; a != nil; a = a.parent {
		if a == child {
			return errors.New(errors.ErrCodeInvalidInput, "add %s to %s: would create a cycle", child, w)
		}
	}
	if w.class.IsA("GtkBin") && len(w.children) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "add %s to %s: already holds %s", child, w, w.children[0])
	}
	w.attach(child)
	return nil
}

func (w *Widget) attach(child *Widget) {
	child.parent = w
	child.packing = make(map[string]introspect.Value)
	w.children = append(w.children, child)
}

// Remove detaches child from w.
func (w *Widget) Remove(child *Widget) error {
	i := slices.Index(w.children, child)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "%s is not a child of %s", child, w)
	}
	w.detach(i)
	if child == w.content {
		w.content = nil
		if img, _ := w.values["image"].Object.(*Widget); img == child {
			delete(w.values, "image")
		}
	}
	return nil
}

func (w *Widget) detach(i int) {
	child := w.children[i]
	w.children = slices.Delete(w.children, i, i+1)
	child.parent = nil
	child.packing = make(map[string]introspect.Value)
}

func (w *Widget) childParam(name string) (*introspect.Param, error) {
	if w.parent == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s has no parent", w)
	}
	p := introspect.Find(w.parent.class.ChildProperties(), name)
	if p == nil {
		return nil, errors.New(errors.ErrCodeUnknownProperty, "%s has no child property %q", w.parent.class.Name, name)
	}
	return p, nil
}

// ChildProperty returns the named packing property of w in its parent.
func (w *Widget) ChildProperty(name string) (introspect.Value, error) {
	p, err := w.childParam(name)
	if err != nil {
		return introspect.Value{}, err
	}
	return w.packingValue(p), nil
}

// SetChildProperty assigns a packing property of w in its parent.
func (w *Widget) SetChildProperty(name string, v introspect.Value) error {
	p, err := w.childParam(name)
	if err != nil {
		return err
	}
	if !p.Writable() {
		return errors.New(errors.ErrCodeInvalidInput, "child property %q of %s is not writable", name, w.parent.class.Name)
	}
	v, err = validate(p, v)
	if err != nil {
		return fmt.Errorf("set %s child property %s: %w", w, name, err)
	}
	if name == "position" {
		w.parent.reorder(w, int(v.Int))
		return nil
	}
	w.packing[name] = v
	return nil
}

func (w *Widget) packingValue(p *introspect.Param) introspect.Value {
	if p.Name == "position" {
		return introspect.IntValue(slices.Index(w.parent.children, w))
	}
	if v, ok := w.packing[p.Name]; ok {
		return v
	}
	return p.Default
}

// reorder moves child to position pos. Negative or out of range positions
// move it to the end.
func (w *Widget) reorder(child *Widget, pos int) {
	i := slices.Index(w.children, child)
	w.children = slices.Delete(w.children, i, i+1)
	if pos < 0 || pos > len(w.children) {
		pos = len(w.children)
	}
	w.children = slices.Insert(w.children, pos, child)
}
