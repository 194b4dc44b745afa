package dump

// Property is one emitted name/value pair. Value is already markup text.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Object is one dumped widget.
type Object struct {
	Class      string     `json:"class"`
	ID         string     `json:"id"`
	Properties []Property `json:"properties,omitempty"`
	Children   []*Object  `json:"children,omitempty"`
	// Packing holds the child properties of this widget in its parent.
	Packing []Property `json:"packing,omitempty"`
}

// Stats summarizes one traversal.
type Stats struct {
	Widgets    int `json:"widgets"`
	Properties int `json:"properties"`
	Packing    int `json:"packing"`
	Skipped    int `json:"skipped"` // composite children left out
}

// Document is the result of a traversal.
type Document struct {
	Root  *Object `json:"root"`
	Stats Stats   `json:"stats"`
}

// Walk calls fn for o and every descendant in pre-order.
func (o *Object) Walk(fn func(o *Object, depth int)) {
	o.walk(fn, 0)
}

func (o *Object) walk(fn func(*Object, int), depth int) {
	fn(o, depth)
	for _, c := range o.Children {
		c.walk(fn, depth+1)
	}
}

// Property returns the emitted value of the named property.
func (o *Object) Property(name string) (string, bool) {
	for _, p := range o.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
