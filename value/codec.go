package value

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Decode parses JSON or YAML source text into a [Value].
// Object names keep the order in which they appear in the source.
// An empty document decodes to [Null].
func Decode(data []byte) (Value, error) {
	if looksLikeJSON(data) {
		if v, err := decodeJSON(data); err == nil {
			return v, nil
		}
	}

	var native any

	err := yaml.UnmarshalWithOptions(data, &native, yaml.UseOrderedMap())
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	v, err := FromNative(native)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return v, nil
}

func looksLikeJSON(data []byte) bool {
	data = bytes.TrimSpace(data)

	return len(data) > 0 && (data[0] == '{' || data[0] == '[')
}

// decodeJSON decodes a single JSON document token by token so that object
// names keep their source order.
func decodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := readJSON(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrDecode.With(slog.String("issue", "trailing data"))
	}

	return v, nil
}

func readJSON(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return FromNative(tok)
	}

	switch delim {
	case '[':
		var elems []Value

		for dec.More() {
			e, err := readJSON(dec)
			if err != nil {
				return nil, err
			}

			elems = append(elems, e)
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return Array{elems: elems}, nil

	case '{':
		var members []Member

		for dec.More() {
			key, err := dec.Token()
			if err != nil {
				return nil, err
			}

			name, _ := key.(string)

			v, err := readJSON(dec)
			if err != nil {
				return nil, err
			}

			members = append(members, Member{Name: name, Value: v})
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return NewObject(members...), nil

	default:
		return nil, ErrDecode.With(slog.String("delim", delim.String()))
	}
}

// MustDecode is like [Decode] but panics on error.
func MustDecode(src string) Value {
	v, err := Decode([]byte(src))
	if err != nil {
		panic(err)
	}

	return v
}

// Format returns the compact JSON text of v.
func Format(v Value) string {
	if v == nil {
		return "null"
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", ToNative(v))
	}

	return string(b)
}

// WriteJSON writes v as JSON to w. A positive indent pretty-prints.
func WriteJSON(_ context.Context, w io.Writer, v Value, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// WriteYAML writes v as YAML to w. A positive indent selects block style,
// otherwise flow style is used.
func WriteYAML(ctx context.Context, w io.Writer, v Value, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, toOrdered(v), opts...)
	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// MarshalJSON implements [json.Marshaler].
func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// MarshalJSON implements [json.Marshaler].
func (b Boolean) MarshalJSON() ([]byte, error) { return json.Marshal(bool(b)) }

// MarshalJSON implements [json.Marshaler].
func (n Number) MarshalJSON() ([]byte, error) { return json.Marshal(float64(n)) }

// MarshalJSON implements [json.Marshaler].
func (s String) MarshalJSON() ([]byte, error) { return json.Marshal(string(s)) }

// MarshalJSON implements [json.Marshaler].
func (a Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')

	for i, e := range a.elems {
		if i > 0 {
			buf.WriteByte(',')
		}

		b, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}

		buf.Write(b)
	}

	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// MarshalJSON implements [json.Marshaler]. Names are written in insertion
// order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, name := range o.names {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(o.props[name])
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML implements [yaml.InterfaceMarshaler].
func (Null) MarshalYAML() (any, error) { return nil, nil }

// MarshalYAML implements [yaml.InterfaceMarshaler].
func (b Boolean) MarshalYAML() (any, error) { return bool(b), nil }

// MarshalYAML implements [yaml.InterfaceMarshaler].
func (n Number) MarshalYAML() (any, error) { return toOrdered(n), nil }

// MarshalYAML implements [yaml.InterfaceMarshaler].
func (s String) MarshalYAML() (any, error) { return string(s), nil }

// MarshalYAML implements [yaml.InterfaceMarshaler].
func (a Array) MarshalYAML() (any, error) { return toOrdered(a), nil }

// MarshalYAML implements [yaml.InterfaceMarshaler].
func (o Object) MarshalYAML() (any, error) { return toOrdered(o), nil }
