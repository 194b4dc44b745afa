package toolkit

import (
	"slices"
	"sort"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/introspect"
)

// Class describes a widget class.
type Class struct {
	Name   string
	Parent *Class

	props []*introspect.Param // inherited first
	child []*introspect.Param
}

// IsA reports whether c is the named class or derives from it.
func (c *Class) IsA(name string) bool {
	for k := c; k != nil; k = k.Parent {
		if k.Name == name {
			return true
		}
	}
	return false
}

// Properties returns every property of the class, base class first.
func (c *Class) Properties() []*introspect.Param { return c.props }

// Property returns the named property or nil.
func (c *Class) Property(name string) *introspect.Param {
	return introspect.Find(c.props, name)
}

// ChildProperties returns the packing properties the class declares for
// its children, base class first.
func (c *Class) ChildProperties() []*introspect.Param { return c.child }

// Ancestry returns the class names from c up to GtkWidget.
func (c *Class) Ancestry() []string {
	var out []string
	for k := c; k != nil; k = k.Parent {
		out = append(out, k.Name)
	}
	return out
}

var classes = map[string]*Class{}

// register adds a class deriving from parent ("" for a root class).
func register(name, parent string, own []*introspect.Param, child ...*introspect.Param) *Class {
	c := &Class{Name: name}
	if parent != "" {
		c.Parent = classes[parent]
		if c.Parent == nil {
			panic("toolkit: unknown parent class " + parent)
		}
		c.props = slices.Clone(c.Parent.props)
		c.child = slices.Clone(c.Parent.child)
	}
	for _, p := range own {
		p.Owner = name
	}
	c.props = append(c.props, own...)
	for _, p := range child {
		p.Owner = name
	}
	c.child = append(c.child, child...)
	classes[name] = c
	return c
}

// LookupClass returns the registered class called name.
func LookupClass(name string) (*Class, error) {
	if c, ok := classes[name]; ok {
		return c, nil
	}
	return nil, errors.New(errors.ErrCodeUnknownClass, "unknown class %q", name)
}

// ClassNames returns the names of all registered classes, sorted.
func ClassNames() []string {
	names := make([]string, 0, len(classes))
	for n := range classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
