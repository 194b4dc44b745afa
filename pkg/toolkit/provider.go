package toolkit

import "github.com/matzehuels/treedump/pkg/introspect"

// Provider exposes toolkit widgets to the serializer. Every handle passed
// in must be a *Widget.
type Provider struct{}

var _ introspect.Provider = Provider{}

func widget(w introspect.Widget) *Widget { return w.(*Widget) }

func (Provider) ClassName(w introspect.Widget) string { return widget(w).class.Name }
func (Provider) Name(w introspect.Widget) string      { return widget(w).Name() }

func (Provider) Properties(w introspect.Widget) []*introspect.Param {
	return widget(w).class.Properties()
}

func (Provider) Value(w introspect.Widget, p *introspect.Param) introspect.Value {
	return widget(w).value(p)
}

func (Provider) IsDefault(p *introspect.Param, v introspect.Value) bool { return p.Defaults(v) }

func (Provider) IsContainer(w introspect.Widget) bool { return widget(w).IsContainer() }

func (Provider) Children(w introspect.Widget) []introspect.Widget {
	children := widget(w).children
	out := make([]introspect.Widget, len(children))
	for i, c := range children {
		out[i] = c
	}
	return out
}

func (Provider) IsCompositeChild(w introspect.Widget) bool { return widget(w).composite }

// Parent returns an untyped nil for toplevels so callers can compare the
// result against nil.
func (Provider) Parent(w introspect.Widget) introspect.Widget {
	if p := widget(w).parent; p != nil {
		return p
	}
	return nil
}

func (Provider) IsContainerClass(parent introspect.Widget) bool {
	return widget(parent).IsContainer()
}

func (Provider) ChildProperties(parent introspect.Widget) []*introspect.Param {
	return widget(parent).class.ChildProperties()
}

func (Provider) ChildValue(parent, child introspect.Widget, p *introspect.Param) introspect.Value {
	return widget(child).packingValue(p)
}

func (Provider) IsButton(w introspect.Widget) bool      { return widget(w).class.IsA("GtkButton") }
func (Provider) IsCheckButton(w introspect.Widget) bool { return widget(w).class.IsA("GtkCheckButton") }
