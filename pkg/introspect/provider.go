package introspect

// Widget is an opaque handle to a node of the live object graph. Handles
// must have reference identity and be comparable.
type Widget any

// Provider exposes a live widget graph to the serializer. Implementations
// are only called from the goroutine that owns the graph.
type Provider interface {
	// ClassName returns the runtime class name of w.
	ClassName(w Widget) string
	// Name returns the current name of w, or "" when unset.
	Name(w Widget) string
	// Properties lists the properties of the runtime class of w,
	// inherited ones included, in a stable order.
	Properties(w Widget) []*Param
	// Value returns the current value of property p on w.
	Value(w Widget, p *Param) Value
	// IsDefault reports whether v is the declared default of p.
	IsDefault(p *Param, v Value) bool

	IsContainer(w Widget) bool
	Children(w Widget) []Widget
	IsCompositeChild(w Widget) bool
	// Parent returns the parent of w, or nil for a toplevel.
	Parent(w Widget) Widget

	// IsContainerClass reports whether the class of parent declares
	// packing (child) properties.
	IsContainerClass(parent Widget) bool
	ChildProperties(parent Widget) []*Param
	ChildValue(parent, child Widget, p *Param) Value

	IsButton(w Widget) bool
	IsCheckButton(w Widget) bool
}
