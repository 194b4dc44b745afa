package dump

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/introspect"
)

// Options configures a Dumper.
type Options struct {
	// Prefix of synthetic ids. Defaults to [DefaultPrefix].
	Prefix string
	// Logger receives per-widget debug output. Nil discards.
	Logger *log.Logger
}

// Dumper serializes widget trees exposed by a Provider. A Dumper holds no
// traversal state and can be reused; each call gets a fresh Registry.
type Dumper struct {
	provider introspect.Provider
	prefix   string
	logger   *log.Logger
}

// New returns a Dumper reading the tree through p.
func New(p introspect.Provider, opts Options) *Dumper {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Dumper{provider: p, prefix: opts.Prefix, logger: logger}
}

// Dump writes the markup of the tree rooted at root to w. The document is
// rendered in memory first; on error nothing is written.
func (d *Dumper) Dump(w io.Writer, root introspect.Widget) error {
	doc, err := d.Build(root)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteMarkup(&buf, doc); err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeOutput, err, "write markup")
	}
	return nil
}

// Build runs the traversal and returns the document model.
func (d *Dumper) Build(root introspect.Widget) (*Document, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil root widget")
	}
	t := &traversal{
		p:      d.provider,
		reg:    NewRegistry(d.prefix),
		logger: d.logger,
	}
	obj, err := t.visit(root)
	if err != nil {
		return nil, err
	}
	return &Document{Root: obj, Stats: t.stats}, nil
}

// traversal is the state of one Build call.
type traversal struct {
	p      introspect.Provider
	reg    *Registry
	stats  Stats
	logger *log.Logger
}

func (t *traversal) visit(w introspect.Widget) (*Object, error) {
	class := t.p.ClassName(w)
	obj := &Object{
		Class: class,
		ID:    t.reg.Assign(w, class, t.p.Name(w)),
	}
	t.stats.Widgets++
	t.logger.Debug("dump object", "class", class, "id", obj.ID)

	props, err := t.properties(w, obj)
	if err != nil {
		return nil, err
	}
	obj.Properties = props

	if dumpsChildren(t.p, w) {
		for _, c := range t.p.Children(w) {
			if t.p.IsCompositeChild(c) {
				t.stats.Skipped++
				continue
			}
			child, err := t.visit(c)
			if err != nil {
				return nil, err
			}
			obj.Children = append(obj.Children, child)
		}
	}

	packing, err := t.packing(w, obj)
	if err != nil {
		return nil, err
	}
	obj.Packing = packing
	return obj, nil
}

func (t *traversal) properties(w introspect.Widget, obj *Object) ([]Property, error) {
	var out []Property
	for _, p := range t.p.Properties(w) {
		if !p.Readable() {
			continue
		}
		v := t.p.Value(w, p)
		if t.p.IsDefault(p, v) || skipProperty(p, v) {
			continue
		}
		if p.Name == propLabel && t.p.IsButton(w) && skipButtonLabel(t.p, w) {
			continue
		}

		var text string
		if p.Name == propMnemonicWidget && v.Kind == introspect.KindObject {
			if v.Object == nil {
				continue
			}
			target, ok := t.reg.Lookup(v.Object)
			if !ok {
				t.logger.Debug("drop forward reference", "id", obj.ID, "property", p.Name)
				continue
			}
			text = target
		} else {
			s, err := FormatValue(p, v)
			if err != nil {
				return nil, fmt.Errorf("object %q (%s): property %q: %w", obj.ID, obj.Class, p.Name, err)
			}
			text = s
		}
		out = append(out, Property{Name: p.Name, Value: text})
		t.stats.Properties++
	}
	return out, nil
}

func (t *traversal) packing(w introspect.Widget, obj *Object) ([]Property, error) {
	parent := t.p.Parent(w)
	if parent == nil || !t.p.IsContainerClass(parent) {
		return nil, nil
	}
	var out []Property
	for _, p := range t.p.ChildProperties(parent) {
		if !p.Readable() || !p.Writable() {
			continue
		}
		v := t.p.ChildValue(parent, w, p)
		if t.p.IsDefault(p, v) {
			continue
		}
		s, err := FormatValue(p, v)
		if err != nil {
			return nil, fmt.Errorf("object %q (%s): packing %q: %w", obj.ID, obj.Class, p.Name, err)
		}
		out = append(out, Property{Name: p.Name, Value: s})
	}
	if len(out) > 0 {
		t.stats.Packing++
	}
	return out, nil
}
