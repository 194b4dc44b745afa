package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/treedump/pkg/errors"
)

const indentUnit = "  "

// WriteMarkup writes doc as builder markup, indented two spaces per level.
func WriteMarkup(w io.Writer, doc *Document) error {
	p := &printer{w: w}
	p.line(0, `<?xml version="1.0"?>`)
	p.line(0, "<interface>")
	if doc != nil && doc.Root != nil {
		p.object(doc.Root, 1)
	}
	p.line(0, "</interface>")
	if p.err != nil {
		return errors.Wrap(errors.ErrCodeOutput, p.err, "write markup")
	}
	return nil
}

// printer writes indented lines and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	if _, err := io.WriteString(p.w, strings.Repeat(indentUnit, depth)); err != nil {
		p.err = err
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) object(o *Object, depth int) {
	p.line(depth, `<object class="%s" id="%s">`, EscapeText(o.Class), EscapeText(o.ID))
	p.properties(o.Properties, depth+1)
	for _, c := range o.Children {
		p.line(depth+1, "<child>")
		p.object(c, depth+2)
		p.line(depth+1, "</child>")
	}
	p.line(depth, "</object>")

	if len(o.Packing) > 0 {
		p.line(depth, "<packing>")
		p.properties(o.Packing, depth+1)
		p.line(depth, "</packing>")
	}
}

func (p *printer) properties(props []Property, depth int) {
	for _, prop := range props {
		p.line(depth, `<property name="%s">%s</property>`, EscapeText(prop.Name), prop.Value)
	}
}
