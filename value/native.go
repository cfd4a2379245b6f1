package value

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
)

// FromNative converts a Go value into a [Value].
//
// Supported inputs are nil, bool, every integer and floating-point type,
// string, []any, map[string]any (names sorted), [yaml.MapSlice] (order
// kept), [json.Number], and Values themselves, nested arbitrarily.
func FromNative(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Boolean(x), nil
	case string:
		return String(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(x), nil
	case int:
		return Number(x), nil
	case int8:
		return Number(x), nil
	case int16:
		return Number(x), nil
	case int32:
		return Number(x), nil
	case int64:
		return Number(x), nil
	case uint:
		return Number(x), nil
	case uint8:
		return Number(x), nil
	case uint16:
		return Number(x), nil
	case uint32:
		return Number(x), nil
	case uint64:
		return Number(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, ErrUnsupportedType.Wrap(err)
		}

		return Number(f), nil

	case []Value:
		return NewArray(x...), nil

	case []any:
		elems := make([]Value, len(x))

		for i, e := range x {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}

			elems[i] = ev
		}

		return Array{elems: elems}, nil

	case map[string]any:
		members := make([]Member, 0, len(x))

		for _, name := range slices.Sorted(maps.Keys(x)) {
			mv, err := FromNative(x[name])
			if err != nil {
				return nil, err
			}

			members = append(members, Member{Name: name, Value: mv})
		}

		return NewObject(members...), nil

	case yaml.MapSlice:
		members := make([]Member, 0, len(x))

		for _, item := range x {
			mv, err := FromNative(item.Value)
			if err != nil {
				return nil, err
			}

			members = append(members, Member{Name: keyString(item.Key), Value: mv})
		}

		return NewObject(members...), nil

	case []string:
		elems := make([]Value, len(x))
		for i, s := range x {
			elems[i] = String(s)
		}

		return Array{elems: elems}, nil

	default:
		return nil, ErrUnsupportedType.With(
			slog.String("type", reflect.TypeOf(v).String()),
		)
	}
}

// MustFromNative is like [FromNative] but panics on error.
func MustFromNative(v any) Value {
	r, err := FromNative(v)
	if err != nil {
		panic(err)
	}

	return r
}

// ToNative converts v into plain Go values: nil, bool, float64, string,
// []any and map[string]any.
func ToNative(v Value) any {
	switch x := v.(type) {
	case nil, Null:
		return nil
	case Boolean:
		return bool(x)
	case Number:
		return float64(x)
	case String:
		return string(x)
	case Array:
		r := make([]any, len(x.elems))
		for i, e := range x.elems {
			r[i] = ToNative(e)
		}

		return r

	case Object:
		r := make(map[string]any, len(x.names))
		for _, name := range x.names {
			r[name] = ToNative(x.props[name])
		}

		return r

	default:
		return nil
	}
}

// toOrdered is like [ToNative] but renders objects as [yaml.MapSlice] so
// that encoders keep insertion order.
func toOrdered(v Value) any {
	switch x := v.(type) {
	case Array:
		r := make([]any, len(x.elems))
		for i, e := range x.elems {
			r[i] = toOrdered(e)
		}

		return r

	case Object:
		r := make(yaml.MapSlice, len(x.names))
		for i, name := range x.names {
			r[i] = yaml.MapItem{Key: name, Value: toOrdered(x.props[name])}
		}

		return r

	case Number:
		if f := float64(x); f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}

		return float64(x)

	default:
		return ToNative(v)
	}
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}

	return fmt.Sprint(k)
}
