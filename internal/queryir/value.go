package queryir

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Value is a sealed interface representing the literal on the right-hand
// side of an Expression.
// Only Null, String, Number, Bool, Time, List and Options implement it.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null is an absent value (JSON null or a missing "value" key).
type Null struct{}

func (Null) value() {}

// String is a free-text value.
type String string

func (String) value() {}

// Number is a numeric value. The query builder emits JSON numbers, so the
// widest lossless Go type is used.
type Number float64

func (Number) value() {}

// Bool is a boolean value.
type Bool bool

func (Bool) value() {}

// Time is a date value supplied directly by a Go caller. Date pickers in the
// builder send strings instead, which stay String.
type Time struct {
	time.Time
}

func (Time) value() {}

// List is an array of plain literals.
type List []Value

func (List) value() {}

// NamedOption is an entry picked from an autocomplete or multi-select
// control. Only Name is rendered; Value is carried through untouched.
type NamedOption struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Options is an array of NamedOption values.
type Options []NamedOption

func (Options) value() {}

// ValueOf classifies a decoded literal into a Value.
//
// Arrays whose elements are all objects with a "name" key become Options,
// and so does a single such object. Empty arrays become an empty List.
// Anything unrecognised is kept as its string form.
func ValueOf(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null{}
	case Value:
		return val
	case string:
		return String(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return String(val.String())
		}
		return Number(f)
	case float64:
		return Number(val)
	case float32:
		return Number(val)
	case int:
		return Number(val)
	case int32:
		return Number(val)
	case int64:
		return Number(val)
	case uint:
		return Number(val)
	case uint64:
		return Number(val)
	case bool:
		return Bool(val)
	case time.Time:
		return Time{Time: val}
	case NamedOption:
		return Options{val}
	case []NamedOption:
		return Options(val)
	case []string:
		list := make(List, len(val))
		for i, s := range val {
			list[i] = String(s)
		}
		return list
	case []any:
		return arrayValue(val)
	case map[string]any:
		if opt, ok := optionOf(val); ok {
			return Options{opt}
		}
		return String(fmt.Sprint(val))
	case map[any]any:
		return ValueOf(stringKeys(val))
	default:
		return String(fmt.Sprint(val))
	}
}

// arrayValue classifies a decoded JSON/YAML array.
func arrayValue(items []any) Value {
	if len(items) == 0 {
		return List{}
	}

	opts := make(Options, 0, len(items))
	for _, item := range items {
		m, ok := asMap(item)
		if !ok {
			break
		}
		opt, ok := optionOf(m)
		if !ok {
			break
		}
		opts = append(opts, opt)
	}
	if len(opts) == len(items) {
		return opts
	}

	list := make(List, len(items))
	for i, item := range items {
		list[i] = ValueOf(item)
	}
	return list
}

// optionOf reads a {name, value} object.
func optionOf(m map[string]any) (NamedOption, bool) {
	raw, ok := m["name"]
	if !ok {
		return NamedOption{}, false
	}
	name, ok := raw.(string)
	if !ok {
		name = fmt.Sprint(raw)
	}
	return NamedOption{Name: name, Value: m["value"]}, true
}

// literal converts a Value back to the plain Go form used for JSON output.
func literal(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case String:
		return string(val)
	case Number:
		return float64(val)
	case Bool:
		return bool(val)
	case Time:
		return val.Format(time.RFC3339Nano)
	case List:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = literal(item)
		}
		return out
	case Options:
		out := make([]any, len(val))
		for i, opt := range val {
			out[i] = map[string]any{"name": opt.Name, "value": opt.Value}
		}
		return out
	default:
		return nil
	}
}

// formatNumber renders a Number as its shortest decimal form: 30, 2.5, -0.125.
func formatNumber(n Number) string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// String returns the decimal form of the number.
func (n Number) String() string {
	return formatNumber(n)
}
