package toolkit

import "github.com/eapache/queue"

// Walk calls fn for root and every descendant in depth-first pre-order,
// internal children included. When fn returns false the subtree below
// that widget is skipped.
func Walk(root *Widget, fn func(w *Widget, depth int) bool) {
	if root != nil {
		walk(root, 0, fn)
	}
}

func walk(w *Widget, depth int, fn func(*Widget, int) bool) {
	if !fn(w, depth) {
		return
	}
	for _, c := range w.children {
		walk(c, depth+1, fn)
	}
}

// FindAll returns every widget below and including root for which match
// returns true, in breadth-first order.
func FindAll(root *Widget, match func(*Widget) bool) []*Widget {
	var out []*Widget
	bfs(root, func(w *Widget) bool {
		if match(w) {
			out = append(out, w)
		}
		return true
	})
	return out
}

// FindByName returns the shallowest widget named name, or nil.
func FindByName(root *Widget, name string) *Widget {
	return find(root, func(w *Widget) bool { return w.Name() == name })
}

// FindByID returns the widget with the given id, or nil.
func FindByID(root *Widget, id uint64) *Widget {
	return find(root, func(w *Widget) bool { return w.id == id })
}

func find(root *Widget, match func(*Widget) bool) *Widget {
	var found *Widget
	bfs(root, func(w *Widget) bool {
		if match(w) {
			found = w
			return false
		}
		return true
	})
	return found
}

// bfs visits widgets level by level until visit returns false.
func bfs(root *Widget, visit func(*Widget) bool) {
	if root == nil {
		return
	}
	q := queue.New()
	q.Add(root)
	for q.Length() > 0 {
		w := q.Remove().(*Widget)
		if !visit(w) {
			return
		}
		for _, c := range w.children {
			q.Add(c)
		}
	}
}
