package snapshot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/introspect"
	"github.com/matzehuels/treedump/pkg/toolkit"
)

// refPrefix marks an object property value as a reference to a named node.
const refPrefix = "@"

// Build creates the live tree described by s and returns its root.
func (s *Snapshot) Build() (*toolkit.Widget, error) {
	if s == nil || s.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "snapshot has no root node")
	}
	b := &builder{named: make(map[string]*toolkit.Widget)}
	root, err := b.node(s.Root, "root")
	if err != nil {
		return nil, err
	}
	if err := b.resolve(); err != nil {
		return nil, err
	}
	return root, nil
}

// ref is an object property waiting for its target.
type ref struct {
	path    string
	w       *toolkit.Widget
	prop    string
	target  string
	packing bool
}

type builder struct {
	named map[string]*toolkit.Widget // first widget with each name
	refs  []ref
}

func (b *builder) node(n *Node, path string) (*toolkit.Widget, error) {
	if n == nil {
		return nil, errors.New(errors.ErrCodeInvalidSnapshot, "%s: empty node", path)
	}
	if err := errors.ValidateClassName(n.Class); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := errors.ValidateWidgetName(n.Name); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	w, err := toolkit.New(n.Class)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if n.Name != "" {
		if err := w.SetName(n.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if _, dup := b.named[n.Name]; !dup {
			b.named[n.Name] = w
		}
	}
	w.SetCompositeChild(n.Composite)

	for i, c := range n.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		cw, err := b.node(c, childPath)
		if err != nil {
			return nil, err
		}
		if err := w.Add(cw); err != nil {
			return nil, fmt.Errorf("%s: %w", childPath, err)
		}
		if err := b.apply(cw, c.Packing, childPath, true); err != nil {
			return nil, err
		}
	}

	if err := b.apply(w, n.Properties, path, false); err != nil {
		return nil, err
	}
	return w, nil
}

// apply sets values on w in declaration order. Packing values go to the
// child properties of the parent of w.
func (b *builder) apply(w *toolkit.Widget, values map[string]any, path string, packing bool) error {
	if len(values) == 0 {
		return nil
	}
	params := w.Class().Properties()
	set := w.SetAny
	kind := "property"
	if packing {
		params = w.Parent().Class().ChildProperties()
		set = w.SetChildAny
		kind = "packing property"
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := errors.ValidatePropertyName(k); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if introspect.Find(params, k) == nil {
			return errors.New(errors.ErrCodeUnknownProperty, "%s: %s has no %s %q", path, w.ClassName(), kind, k)
		}
	}

	for _, p := range params {
		v, ok := values[p.Name]
		if !ok {
			continue
		}
		if s, isRef := v.(string); isRef && p.Kind == introspect.KindObject && strings.HasPrefix(s, refPrefix) {
			b.refs = append(b.refs, ref{path: path, w: w, prop: p.Name, target: strings.TrimPrefix(s, refPrefix), packing: packing})
			continue
		}
		if err := set(p.Name, v); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// resolve assigns deferred object references in the order they were
// recorded.
func (b *builder) resolve() error {
	for _, r := range b.refs {
		target, ok := b.named[r.target]
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "%s: %s refers to unknown widget %q", r.path, r.prop, r.target)
		}
		set := r.w.SetAny
		if r.packing {
			set = r.w.SetChildAny
		}
		if err := set(r.prop, target); err != nil {
			return fmt.Errorf("%s: %w", r.path, err)
		}
	}
	return nil
}
