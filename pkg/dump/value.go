package dump

import (
	"strconv"
	"strings"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/introspect"
)

// flagSeparator joins the names of set flags.
const flagSeparator = " | "

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// EscapeText escapes s for embedding in markup text or attribute values.
func EscapeText(s string) string {
	return markupEscaper.Replace(s)
}

// FormatValue converts v, the value of property p, to its markup text.
// Enum values without a symbolic name yield an UNKNOWN_ENUM error.
func FormatValue(p *introspect.Param, v introspect.Value) (string, error) {
	switch v.Kind {
	case introspect.KindEnum:
		return FormatEnum(p.Enum, v.Int)
	case introspect.KindFlags:
		if p.FlagSet == nil {
			return EscapeText(v.String()), nil
		}
		return FormatFlags(p.FlagSet, v.Bits), nil
	case introspect.KindString:
		if v.Null {
			return "", nil
		}
		return EscapeText(v.Str), nil
	case introspect.KindBool:
		if v.Bool {
			return "True", nil
		}
		return "False", nil
	case introspect.KindInt, introspect.KindInt64:
		return strconv.FormatInt(v.Int, 10), nil
	default:
		return EscapeText(v.String()), nil
	}
}

// FormatEnum returns the symbolic name of value in class.
func FormatEnum(class *introspect.EnumClass, value int64) (string, error) {
	if class == nil {
		return "", errors.New(errors.ErrCodeUnknownEnum, "enum value %d has no enum class", value)
	}
	e, ok := class.Lookup(value)
	if !ok {
		return "", errors.New(errors.ErrCodeUnknownEnum, "%s has no value %d", class.Name, value)
	}
	return e.Name, nil
}

// FormatFlags returns the names of every flag of class fully set in value,
// in declaration order, joined by " | ". Entries with a zero mask never
// match, so a zero value yields "".
func FormatFlags(class *introspect.FlagsClass, value uint64) string {
	var b strings.Builder
	for _, f := range class.Values {
		if f.Value == 0 || value&f.Value != f.Value {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(flagSeparator)
		}
		b.WriteString(f.Name)
	}
	return b.String()
}
