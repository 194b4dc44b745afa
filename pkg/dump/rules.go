package dump

import "github.com/matzehuels/treedump/pkg/introspect"

// Property names with special handling.
const (
	propEvents         = "events"
	propImage          = "image"
	propLabel          = "label"
	propUseStock       = "use-stock"
	propMnemonicWidget = "mnemonic-widget"
)

// ignoredProperties are never emitted: either structure already says it
// (name, parent) or it is derived toolkit state.
var ignoredProperties = map[string]bool{
	"name":            true,
	"parent":          true,
	"style":           true,
	"window":          true,
	"mnemonic-keyval": true,
	"screen":          true,
	"resize-mode":     true,
	"text-length":     true,
	"invisible-char":  true,
}

// IsIgnored reports whether the property name is in the fixed exclusion set.
func IsIgnored(name string) bool {
	return ignoredProperties[name]
}

// skipProperty applies the per-property rules that do not depend on the
// owning widget.
func skipProperty(p *introspect.Param, v introspect.Value) bool {
	switch {
	case IsIgnored(p.Name):
		return true
	case p.Name == propEvents && v.Kind == introspect.KindFlags && v.Bits == 0:
		return true
	case p.Name == propImage:
		return true
	}
	return false
}

// buttonState reads the image and use-stock properties of a button-like
// widget. Missing properties read as unset.
func buttonState(pr introspect.Provider, w introspect.Widget) (hasImage, useStock bool) {
	params := pr.Properties(w)
	if p := introspect.Find(params, propImage); p != nil && p.Readable() {
		v := pr.Value(w, p)
		hasImage = v.Kind == introspect.KindObject && v.Object != nil
	}
	if p := introspect.Find(params, propUseStock); p != nil && p.Readable() {
		useStock = pr.Value(w, p).Bool
	}
	return hasImage, useStock
}

// skipButtonLabel reports whether the label of a button is hidden by its
// image.
func skipButtonLabel(pr introspect.Provider, w introspect.Widget) bool {
	hasImage, useStock := buttonState(pr, w)
	return hasImage && !useStock
}

// dumpsChildren reports whether the children of w are user content.
// Check buttons never expose theirs; buttons only do when they show a
// custom image.
func dumpsChildren(pr introspect.Provider, w introspect.Widget) bool {
	if !pr.IsContainer(w) || pr.IsCheckButton(w) {
		return false
	}
	if pr.IsButton(w) {
		hasImage, useStock := buttonState(pr, w)
		if useStock || !hasImage {
			return false
		}
	}
	return true
}
