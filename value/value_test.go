package value

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestEqual(t *testing.T) {
	obj := func(pairs ...any) Object {
		m := make([]Member, 0, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			m = append(m, Member{Name: pairs[i].(string), Value: pairs[i+1].(Value)})
		}

		return NewObject(m...)
	}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null", Null{}, Null{}, true},
		{"null_vs_false", Null{}, Boolean(false), false},
		{"number", Number(48), Number(48), true},
		{"number_vs_string", Number(48), String("0"), false},
		{"string", String("abc"), String("abc"), true},
		{"array", NewArray(Number(1), String("x")), NewArray(Number(1), String("x")), true},
		{"array_len", NewArray(Number(1)), NewArray(Number(1), Number(1)), false},
		{"empty_arrays", Array{}, NewArray(), true},
		{"object_order", obj("a", Number(1), "b", Number(2)), obj("b", Number(2), "a", Number(1)), true},
		{"object_value", obj("a", Number(1)), obj("a", Number(2)), false},
		{"object_names", obj("a", Number(1)), obj("b", Number(1)), false},
		{"nested", NewArray(obj("k", NewArray(Null{}))), NewArray(obj("k", NewArray(Null{}))), true},
		{"nil_nil", nil, nil, true},
		{"nil_null", nil, Null{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", Format(tt.a), Format(tt.b), got, tt.want)
			}

			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal is not symmetric for %s, %s", Format(tt.a), Format(tt.b))
			}
		})
	}
}

func TestString_Sequence(t *testing.T) {
	s := String("héllo")

	if s.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", s.Len())
	}

	if got := s.Index(1); !Equal(got, Number('é')) {
		t.Errorf("Index(1) = %v, want %v", got, Number('é'))
	}

	if got := s.Slice(1, 3); !Equal(got, String("él")) {
		t.Errorf("Slice(1, 3) = %v", got)
	}

	if got := s.Slice(5, 5); !Equal(got, String("")) {
		t.Errorf("Slice(5, 5) = %v", got)
	}

	first, rest, ok := s.Head()
	if !ok || !Equal(first, Number('h')) || !Equal(rest, String("éllo")) {
		t.Errorf("Head() = %v, %v, %v", first, rest, ok)
	}

	if _, _, ok := String("").Head(); ok {
		t.Error("Head() on empty string should report !ok")
	}
}

func TestArray_Sequence(t *testing.T) {
	a := NewArray(Number(1), Number(2), Number(3))

	if got := a.Slice(1, 3); !Equal(got, NewArray(Number(2), Number(3))) {
		t.Errorf("Slice(1, 3) = %s", Format(got))
	}

	first, rest, ok := a.Head()
	if !ok || !Equal(first, Number(1)) || rest.Len() != 2 {
		t.Errorf("Head() = %v, %v, %v", first, rest, ok)
	}

	if _, _, ok := (Array{}).Head(); ok {
		t.Error("Head() on empty array should report !ok")
	}
}

func TestIndex_PanicsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"string_index", func() { String("ab").Index(2) }},
		{"string_negative", func() { String("ab").Index(-1) }},
		{"string_slice", func() { String("ab").Slice(1, 3) }},
		{"array_index", func() { NewArray(Null{}).Index(1) }},
		{"array_slice", func() { NewArray(Null{}).Slice(1, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}

				if err, ok := r.(error); !ok || !errors.Is(err, ErrIndex) {
					t.Errorf("panic value = %v, want ErrIndex", r)
				}
			}()

			tt.fn()
		})
	}
}

func TestArray_Immutable(t *testing.T) {
	base := NewArray(Number(1), Number(2), Number(3))
	prefix := base.Extract(0, 2)

	grown := prefix.Append(Number(9))

	if !Equal(base, NewArray(Number(1), Number(2), Number(3))) {
		t.Errorf("Append on a slice modified the source: %s", Format(base))
	}

	if !Equal(grown, NewArray(Number(1), Number(2), Number(9))) {
		t.Errorf("grown = %s", Format(grown))
	}

	vals := base.Values()
	vals[0] = String("x")

	if !Equal(base.Index(0), Number(1)) {
		t.Error("Values() exposed internal storage")
	}
}

func TestArray_ConcatReduce(t *testing.T) {
	a := NewArray(Number(1)).Concat(NewArray(Number(2)), Array{}, NewArray(Number(3)))

	sum := a.Reduce(Number(0), func(acc, e Value) Value {
		return acc.(Number) + e.(Number)
	})

	if !Equal(sum, Number(6)) {
		t.Errorf("sum = %v, want 6", sum)
	}
}

func TestObject(t *testing.T) {
	o := NewObject(
		Member{Name: "b", Value: Number(1)},
		Member{Name: "a", Value: Number(2)},
		Member{Name: "b", Value: Number(3)},
	)

	if got := strings.Join(o.Names(), ","); got != "b,a" {
		t.Errorf("Names() = %q, want %q", got, "b,a")
	}

	if v, _ := o.Get("b"); !Equal(v, Number(3)) {
		t.Errorf("later binding should win, got %v", v)
	}

	with := o.With("c", Boolean(true))
	if o.Has("c") || !with.Has("c") {
		t.Error("With must not modify the receiver")
	}

	merged := o.Concat(NewObject(Member{Name: "a", Value: String("x")}))
	if v, _ := merged.Get("a"); !Equal(v, String("x")) {
		t.Errorf("Concat: later binding should win, got %v", v)
	}

	if got := merged.Without("a").Names(); len(got) != 1 || got[0] != "b" {
		t.Errorf("Without = %v", got)
	}

	count := o.Reduce(Number(0), func(acc Value, _ string, _ Value) Value {
		return acc.(Number) + 1
	})
	if !Equal(count, Number(2)) {
		t.Errorf("Reduce count = %v", count)
	}
}

func TestFromNative(t *testing.T) {
	got, err := FromNative(map[string]any{
		"b": []any{1, int64(2), uint8(3), 4.5, "x", true, nil},
		"a": map[string]any{},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := MustDecode(`{"a": {}, "b": [1, 2, 3, 4.5, "x", true, null]}`)
	if !Equal(got, want) {
		t.Errorf("FromNative = %s, want %s", Format(got), Format(want))
	}

	if names := got.(Object).Names(); names[0] != "a" {
		t.Errorf("map names should be sorted, got %v", names)
	}

	if _, err := FromNative(struct{}{}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestDecode_PreservesOrder(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"json", `{"zeta": 1, "alpha": [true, "s"], "mid": null}`},
		{"yaml", "zeta: 1\nalpha:\n  - true\n  - s\nmid: null\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.src))
			if err != nil {
				t.Fatal(err)
			}

			o, ok := v.(Object)
			if !ok {
				t.Fatalf("Decode returned %T, want Object", v)
			}

			if got := strings.Join(o.Names(), ","); got != "zeta,alpha,mid" {
				t.Errorf("Names() = %q", got)
			}

			if got := Format(v); got != `{"zeta":1,"alpha":[true,"s"],"mid":null}` {
				t.Errorf("Format = %s", got)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte("{unclosed")); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestToNative_RoundTrip(t *testing.T) {
	v := MustDecode(`{"a": [1, "two", {"b": false}], "c": null}`)

	back, err := FromNative(ToNative(v))
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(v, back) {
		t.Errorf("round trip = %s, want %s", Format(back), Format(v))
	}
}

func TestWriteYAML(t *testing.T) {
	v := MustDecode(`{"kind": "range", "from": 49, "to": 57.5}`)

	var buf bytes.Buffer
	if err := WriteYAML(context.Background(), &buf, v, 2); err != nil {
		t.Fatal(err)
	}

	want := "kind: range\nfrom: 49\nto: 57.5\n"
	if buf.String() != want {
		t.Errorf("WriteYAML =\n%s\nwant\n%s", buf.String(), want)
	}

	back, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	if !Equal(v, back) {
		t.Errorf("YAML round trip = %s", Format(back))
	}
}

func TestWriteJSON_Indent(t *testing.T) {
	var buf bytes.Buffer

	v := NewObject(Member{Name: "k", Value: NewArray(Number(1))})
	if err := WriteJSON(context.Background(), &buf, v, 2); err != nil {
		t.Fatal(err)
	}

	want := "{\n  \"k\": [\n    1\n  ]\n}\n"
	if buf.String() != want {
		t.Errorf("WriteJSON = %q, want %q", buf.String(), want)
	}
}

func TestHash(t *testing.T) {
	a := MustDecode(`{"x": 1, "y": [1, 2]}`)
	b := MustDecode(`{"y": [1, 2], "x": 1}`)
	c := MustDecode(`{"x": 1, "y": [2, 1]}`)

	if Hash(a) != Hash(b) {
		t.Error("equal values must hash identically")
	}

	if Hash(a) == Hash(c) {
		t.Error("distinct values should hash differently")
	}

	if Hash(String("1")) == Hash(Number(1)) {
		t.Error("string and number should hash differently")
	}
}

func TestFingerprint(t *testing.T) {
	a := MustDecode(`{"x": 1, "y": {"p": 1, "q": 2}}`)
	b := MustDecode(`{"y": {"p": 1, "q": 2}, "x": 1}`)
	c := MustDecode(`{"x": 1, "y": {"q": 2, "p": 1}}`)

	if Fingerprint(a) != Fingerprint(MustDecode(Format(a))) {
		t.Error("identical values must fingerprint identically")
	}

	if Fingerprint(a) == Fingerprint(b) || Fingerprint(a) == Fingerprint(c) {
		t.Error("member order must contribute to the fingerprint")
	}

	if Hash(a) != Hash(c) {
		t.Error("member order must not contribute to the hash")
	}
}

func TestTruthy(t *testing.T) {
	for v, want := range map[string]bool{
		`null`: false, `false`: false, `true`: true, `0`: true, `""`: true, `[]`: true,
	} {
		if got := Truthy(MustDecode(v)); got != want {
			t.Errorf("Truthy(%s) = %v, want %v", v, got, want)
		}
	}
}
