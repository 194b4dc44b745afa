package toolkit

import "github.com/matzehuels/treedump/pkg/introspect"

// stockLabels maps stock ids to their mnemonic labels.
var stockLabels = map[string]string{
	"gtk-ok":     "_OK",
	"gtk-cancel": "_Cancel",
	"gtk-close":  "_Close",
	"gtk-save":   "_Save",
	"gtk-open":   "_Open",
	"gtk-apply":  "_Apply",
	"gtk-quit":   "_Quit",
	"gtk-delete": "_Delete",
	"gtk-help":   "_Help",
}

// syncButton rebuilds the child of a button after label, image, use-stock
// or use-underline changed. Like GTK, any existing child is dropped. A
// custom image becomes the child; otherwise a non-null label yields an
// internal GtkLabel.
func (w *Widget) syncButton() {
	for len(w.children) > 0 {
		w.detach(0)
	}
	w.content = nil

	image, _ := w.values["image"].Object.(*Widget)
	useStock := w.values["use-stock"].Bool
	label := w.values["label"]

	switch {
	case image != nil && !useStock:
		w.content = image
	case label.Kind == introspect.KindString && !label.Null:
		text, underline := label.Str, w.values["use-underline"].Bool
		if useStock {
			if s, ok := stockLabels[text]; ok {
				text = s
			}
			underline = true
		}
		inner := MustNew("GtkLabel")
		inner.values["label"] = introspect.StringValue(text)
		inner.values["use-underline"] = introspect.BoolValue(underline)
		inner.values["visible"] = introspect.BoolValue(true)
		w.content = inner
	default:
		return
	}
	w.attach(w.content)
}
