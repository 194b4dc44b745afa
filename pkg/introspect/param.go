package introspect

import (
	"reflect"
	"strings"
)

// Kind is the declared value type of a property.
type Kind int

const (
	KindOther Kind = iota
	KindEnum
	KindFlags
	KindString
	KindBool
	KindInt
	KindInt64
	KindObject
)

var kindNames = map[Kind]string{
	KindOther:  "other",
	KindEnum:   "enum",
	KindFlags:  "flags",
	KindString: "string",
	KindBool:   "bool",
	KindInt:    "int",
	KindInt64:  "int64",
	KindObject: "object",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParamFlags are the access flags of a property.
type ParamFlags uint8

const (
	Readable ParamFlags = 1 << iota
	Writable
	Construct
	ConstructOnly
)

// ReadWrite is the common case of a readable and writable property.
const ReadWrite = Readable | Writable

// Has reports whether all bits of f are set.
func (p ParamFlags) Has(f ParamFlags) bool { return p&f == f }

func (p ParamFlags) String() string {
	var parts []string
	for _, f := range []struct {
		flag ParamFlags
		name string
	}{{Readable, "readable"}, {Writable, "writable"}, {Construct, "construct"}, {ConstructOnly, "construct-only"}} {
		if p.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// EnumEntry is one symbolic value of an enum type.
type EnumEntry struct {
	Value int64
	Name  string // e.g. "GTK_WINDOW_TOPLEVEL"
	Nick  string // e.g. "toplevel"
}

// EnumClass is the value table of an enum type.
type EnumClass struct {
	Name   string
	Values []EnumEntry
}

// Lookup returns the entry whose value is v.
func (c *EnumClass) Lookup(v int64) (EnumEntry, bool) {
	for _, e := range c.Values {
		if e.Value == v {
			return e, true
		}
	}
	return EnumEntry{}, false
}

// ByName returns the entry matching s by name or nick.
func (c *EnumClass) ByName(s string) (EnumEntry, bool) {
	for _, e := range c.Values {
		if e.Name == s || e.Nick == s {
			return e, true
		}
	}
	return EnumEntry{}, false
}

// FlagEntry is one bit (or mask) of a flags type.
type FlagEntry struct {
	Value uint64
	Name  string
	Nick  string
}

// FlagsClass is the table of a flags type, in declaration order.
type FlagsClass struct {
	Name   string
	Values []FlagEntry
}

// ByName returns the entry matching s by name or nick.
func (c *FlagsClass) ByName(s string) (FlagEntry, bool) {
	for _, e := range c.Values {
		if e.Name == s || e.Nick == s {
			return e, true
		}
	}
	return FlagEntry{}, false
}

// Param describes one introspectable property of a widget class.
type Param struct {
	Name    string
	Kind    Kind
	Flags   ParamFlags
	Owner   string      // class that declares the property
	Enum    *EnumClass  // set for KindEnum
	FlagSet *FlagsClass // set for KindFlags
	Default Value

	// Equal compares two KindOther payloads. When nil, reflect.DeepEqual
	// is used.
	Equal func(a, b any) bool
}

// Readable reports whether the property can be read.
func (p *Param) Readable() bool { return p.Flags.Has(Readable) }

// Writable reports whether the property can be written.
func (p *Param) Writable() bool { return p.Flags.Has(Writable) }

// Defaults reports whether v equals the declared default of p, using the
// comparison that fits the property kind.
func (p *Param) Defaults(v Value) bool {
	d := p.Default
	if v.Kind != p.Kind {
		return false
	}
	switch p.Kind {
	case KindEnum, KindInt, KindInt64:
		return v.Int == d.Int
	case KindFlags:
		return v.Bits == d.Bits
	case KindString:
		if v.Null || d.Null {
			return v.Null == d.Null
		}
		return v.Str == d.Str
	case KindBool:
		return v.Bool == d.Bool
	case KindObject:
		return v.Object == d.Object
	default:
		if p.Equal != nil {
			return p.Equal(v.Other, d.Other)
		}
		return reflect.DeepEqual(v.Other, d.Other)
	}
}

// Find returns the param called name, or nil.
func Find(params []*Param, name string) *Param {
	for _, p := range params {
		if p.Name == name {
			return p
		}
	}
	return nil
}
