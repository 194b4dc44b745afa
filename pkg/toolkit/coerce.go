package toolkit

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/treedump/pkg/errors"
	"github.com/matzehuels/treedump/pkg/introspect"
)

// SetAny assigns a property from a loosely typed value, as found in
// decoded snapshots or passed in from scripts. See [Coerce].
func (w *Widget) SetAny(name string, v any) error {
	p, err := w.param(name)
	if err != nil {
		return err
	}
	val, err := Coerce(p, v)
	if err != nil {
		return fmt.Errorf("set %s.%s: %w", w, name, err)
	}
	return w.Set(name, val)
}

// GetAny returns a property as a plain Go value. See [Export].
func (w *Widget) GetAny(name string) (any, error) {
	v, err := w.Get(name)
	if err != nil {
		return nil, err
	}
	return Export(w.class.Property(name), v), nil
}

// SetChildAny assigns a packing property from a loosely typed value.
func (w *Widget) SetChildAny(name string, v any) error {
	p, err := w.childParam(name)
	if err != nil {
		return err
	}
	val, err := Coerce(p, v)
	if err != nil {
		return fmt.Errorf("set %s child property %s: %w", w, name, err)
	}
	return w.SetChildProperty(name, val)
}

// Coerce converts v to a value of the declared type of p.
//
//   - enums accept a value name, a nick or an integer
//   - flags accept "A | B", a list of names or an integer
//   - strings accept a string, or nil for the null string
//   - booleans accept a bool or a string parsed by strconv.ParseBool
//   - integers accept any Go number without a fractional part, a
//     json.Number or a decimal string
//   - objects accept a *Widget or nil
//   - floats accept any number
func Coerce(p *introspect.Param, v any) (introspect.Value, error) {
	switch p.Kind {
	case introspect.KindEnum:
		if s, ok := v.(string); ok {
			e, found := p.Enum.ByName(strings.TrimSpace(s))
			if !found {
				return introspect.Value{}, errors.New(errors.ErrCodeUnknownEnum, "%s has no value %q", p.Enum.Name, s)
			}
			return introspect.EnumValue(e.Value), nil
		}
		n, err := toInt64(v)
		if err != nil {
			return introspect.Value{}, err
		}
		return introspect.EnumValue(n), nil

	case introspect.KindFlags:
		bits, err := flagBits(p.FlagSet, v)
		if err != nil {
			return introspect.Value{}, err
		}
		return introspect.FlagsValue(bits), nil

	case introspect.KindString:
		switch s := v.(type) {
		case nil:
			return introspect.NullString(), nil
		case string:
			return introspect.StringValue(s), nil
		}
		return introspect.Value{}, mismatch("string", v)

	case introspect.KindBool:
		switch b := v.(type) {
		case bool:
			return introspect.BoolValue(b), nil
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return introspect.Value{}, mismatch("bool", v)
			}
			return introspect.BoolValue(parsed), nil
		}
		return introspect.Value{}, mismatch("bool", v)

	case introspect.KindInt:
		n, err := toInt64(v)
		if err != nil {
			return introspect.Value{}, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return introspect.Value{}, errors.New(errors.ErrCodeTypeMismatch, "%d overflows int", n)
		}
		return introspect.IntValue(int(n)), nil

	case introspect.KindInt64:
		n, err := toInt64(v)
		if err != nil {
			return introspect.Value{}, err
		}
		return introspect.Int64Value(n), nil

	case introspect.KindObject:
		switch o := v.(type) {
		case nil:
			return introspect.NullObject(), nil
		case *Widget:
			if o == nil {
				return introspect.NullObject(), nil
			}
			return introspect.ObjectValue(o), nil
		}
		return introspect.Value{}, mismatch("widget", v)

	default:
		f, err := toFloat64(v)
		if err != nil {
			return introspect.Value{}, err
		}
		return introspect.OtherValue(float32(f)), nil
	}
}

// Export converts a property value to a plain Go value: enum and flag
// names as strings, the null string and the null object as nil.
func Export(p *introspect.Param, v introspect.Value) any {
	switch v.Kind {
	case introspect.KindEnum:
		if p != nil && p.Enum != nil {
			if e, ok := p.Enum.Lookup(v.Int); ok {
				return e.Name
			}
		}
		return v.Int
	case introspect.KindFlags:
		names := []string{}
		if p != nil && p.FlagSet != nil {
			for _, f := range p.FlagSet.Values {
				if f.Value != 0 && v.Bits&f.Value == f.Value {
					names = append(names, f.Name)
				}
			}
		}
		return names
	case introspect.KindString:
		if v.Null {
			return nil
		}
		return v.Str
	case introspect.KindBool:
		return v.Bool
	case introspect.KindInt:
		return int(v.Int)
	case introspect.KindInt64:
		return v.Int
	case introspect.KindObject:
		if w, ok := v.Object.(*Widget); ok && w != nil {
			return w
		}
		return nil
	default:
		return v.Other
	}
}

func flagBits(class *introspect.FlagsClass, v any) (uint64, error) {
	var names []string
	switch x := v.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return 0, nil
		}
		names = strings.Split(x, "|")
	case []string:
		names = x
	case []any:
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return 0, mismatch("flag name", item)
			}
			names = append(names, s)
		}
	default:
		n, err := toInt64(v)
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, errors.New(errors.ErrCodeTypeMismatch, "negative flags %d", n)
		}
		return uint64(n), nil
	}

	var bits uint64
	for _, name := range names {
		f, ok := class.ByName(strings.TrimSpace(name))
		if !ok {
			return 0, errors.New(errors.ErrCodeUnknownEnum, "%s has no flag %q", class.Name, strings.TrimSpace(name))
		}
		bits |= f.Value
	}
	return bits, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, errors.New(errors.ErrCodeTypeMismatch, "%d overflows int64", n)
		}
		return int64(n), nil
	case float32:
		return toInt64(float64(n))
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n > math.MaxInt64 {
			return 0, errors.New(errors.ErrCodeTypeMismatch, "%v is not an integer", n)
		}
		return int64(n), nil
	case json.Number:
		return toInt64(string(n))
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, mismatch("integer", v)
		}
		return i, nil
	}
	return 0, mismatch("integer", v)
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, mismatch("number", v)
		}
		return f, nil
	}
	i, err := toInt64(v)
	if err != nil {
		return 0, mismatch("number", v)
	}
	return float64(i), nil
}

func mismatch(want string, got any) error {
	return errors.New(errors.ErrCodeTypeMismatch, "want %s, got %T", want, got)
}
