package introspect

import "fmt"

// Value is the current value of a property. Only the field matching Kind
// is meaningful.
type Value struct {
	Kind   Kind
	Int    int64  // KindEnum, KindInt, KindInt64
	Bits   uint64 // KindFlags
	Str    string // KindString
	Null   bool   // KindString holding no string at all
	Bool   bool   // KindBool
	Object Widget // KindObject, nil when unset
	Other  any    // KindOther
}

func EnumValue(v int64) Value    { return Value{Kind: KindEnum, Int: v} }
func FlagsValue(v uint64) Value  { return Value{Kind: KindFlags, Bits: v} }
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func NullString() Value          { return Value{Kind: KindString, Null: true} }
func BoolValue(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func IntValue(v int) Value       { return Value{Kind: KindInt, Int: int64(v)} }
func Int64Value(v int64) Value   { return Value{Kind: KindInt64, Int: v} }
func ObjectValue(w Widget) Value { return Value{Kind: KindObject, Object: w} }
func OtherValue(v any) Value     { return Value{Kind: KindOther, Other: v} }
func NullObject() Value          { return Value{Kind: KindObject} }

// IsNullObject reports whether v is an object value holding no object.
func (v Value) IsNullObject() bool { return v.Kind == KindObject && v.Object == nil }

// String returns the generic printable form of the value.
func (v Value) String() string {
	switch v.Kind {
	case KindEnum, KindInt, KindInt64:
		return fmt.Sprintf("%d", v.Int)
	case KindFlags:
		return fmt.Sprintf("%#x", v.Bits)
	case KindString:
		if v.Null {
			return "NULL"
		}
		return fmt.Sprintf("%q", v.Str)
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case KindObject:
		if v.Object == nil {
			return "NULL"
		}
		return fmt.Sprint(v.Object)
	default:
		return fmt.Sprint(v.Other)
	}
}
