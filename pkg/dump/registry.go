package dump

import (
	"strconv"

	"github.com/matzehuels/treedump/pkg/introspect"
)

// DefaultPrefix is the prefix of synthetic widget ids.
const DefaultPrefix = "widget"

// Registry maps widget identity to the id assigned during one traversal.
// It is not safe for concurrent use.
type Registry struct {
	prefix  string
	unnamed int
	names   map[introspect.Widget]string
}

// NewRegistry returns an empty registry. An empty prefix means
// [DefaultPrefix].
func NewRegistry(prefix string) *Registry {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Registry{prefix: prefix, names: make(map[introspect.Widget]string)}
}

// Assign registers w and returns its id. A name that is empty or equal to
// the class name is replaced by the next synthetic id.
func (r *Registry) Assign(w introspect.Widget, class, name string) string {
	if name == "" || name == class {
		r.unnamed++
		name = r.prefix + strconv.Itoa(r.unnamed)
	}
	r.names[w] = name
	return name
}

// Lookup returns the id of w if it has been registered.
func (r *Registry) Lookup(w introspect.Widget) (string, bool) {
	if w == nil {
		return "", false
	}
	name, ok := r.names[w]
	return name, ok
}

// Len returns the number of registered widgets.
func (r *Registry) Len() int { return len(r.names) }
