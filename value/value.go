package value

import (
	"strconv"

	"github.com/organix/crlf/pkg"
)

// Errors returned by value construction and decoding.
var (
	ErrUnsupportedType = pkg.NewError("unsupported native type")
	ErrDecode          = pkg.NewError("failed to decode value")
	ErrEncode          = pkg.NewError("failed to encode value")
	ErrIndex           = pkg.NewError("index out of range")
)

// Kind identifies the variant of a [Value].
type Kind int

const (
	KindNull    Kind = iota // null
	KindBoolean             // boolean
	KindNumber              // number
	KindString              // string
	KindArray               // array
	KindObject              // object
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable structured value.
//
// The set of implementations is closed: [Null], [Boolean], [Number],
// [String], [Array] and [Object].
type Value interface {
	Kind() Kind

	value()
}

// Null is the null value.
type Null struct{}

// Boolean is a boolean value.
type Boolean bool

// Number is a numeric value. All numbers are float64.
type Number float64

// String is a text value. Its elements are Unicode code points, each
// reported as a [Number].
type String string

func (Null) Kind() Kind    { return KindNull }
func (Boolean) Kind() Kind { return KindBoolean }
func (Number) Kind() Kind  { return KindNumber }
func (String) Kind() Kind  { return KindString }
func (Array) Kind() Kind   { return KindArray }
func (Object) Kind() Kind  { return KindObject }

func (Null) value()    {}
func (Boolean) value() {}
func (Number) value()  {}
func (String) value()  {}
func (Array) value()   {}
func (Object) value()  {}

// Equal reports whether a and b are structurally equal.
//
// Scalars compare by value. Arrays compare element-wise. Objects compare
// equal when they bind the same names to equal values; the order in which
// names were added is not significant. A nil Value equals only nil.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)

		return ok

	case Boolean:
		y, ok := b.(Boolean)

		return ok && x == y

	case Number:
		y, ok := b.(Number)

		return ok && x == y

	case String:
		y, ok := b.(String)

		return ok && x == y

	case Array:
		y, ok := b.(Array)
		if !ok || len(x.elems) != len(y.elems) {
			return false
		}

		for i := range x.elems {
			if !Equal(x.elems[i], y.elems[i]) {
				return false
			}
		}

		return true

	case Object:
		y, ok := b.(Object)
		if !ok || len(x.names) != len(y.names) {
			return false
		}

		for _, name := range x.names {
			v, ok := y.props[name]
			if !ok || !Equal(x.props[name], v) {
				return false
			}
		}

		return true

	default:
		return false
	}
}

// Truthy reports whether v is anything other than null or false.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case nil, Null:
		return false
	case Boolean:
		return bool(x)
	default:
		return true
	}
}
