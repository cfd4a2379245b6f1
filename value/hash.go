package value

import (
	"slices"
	"strconv"

	"github.com/zeebo/xxh3"
)

// Hash returns a 64-bit fingerprint of v.
//
// Values that are [Equal] hash identically: objects are hashed with their
// names sorted, so insertion order does not contribute.
func Hash(v Value) uint64 {
	return xxh3.Hash(appendCanonical(nil, v, true))
}

// Fingerprint is like [Hash], but object names contribute in insertion
// order. Objects that differ only in member order have distinct
// fingerprints.
func Fingerprint(v Value) uint64 {
	return xxh3.Hash(appendCanonical(nil, v, false))
}

// appendCanonical appends a JSON encoding of v to buf, with object names
// sorted if sorted is set.
func appendCanonical(buf []byte, v Value, sorted bool) []byte {
	switch x := v.(type) {
	case nil, Null:
		return append(buf, "null"...)

	case Boolean:
		return strconv.AppendBool(buf, bool(x))

	case Number:
		return strconv.AppendFloat(buf, float64(x), 'g', -1, 64)

	case String:
		return strconv.AppendQuote(buf, string(x))

	case Array:
		buf = append(buf, '[')

		for i, e := range x.elems {
			if i > 0 {
				buf = append(buf, ',')
			}

			buf = appendCanonical(buf, e, sorted)
		}

		return append(buf, ']')

	case Object:
		buf = append(buf, '{')

		names := x.names
		if sorted {
			names = slices.Sorted(slices.Values(names))
		}

		for i, name := range names {
			if i > 0 {
				buf = append(buf, ',')
			}

			buf = strconv.AppendQuote(buf, name)
			buf = append(buf, ':')
			buf = appendCanonical(buf, x.props[name], sorted)
		}

		return append(buf, '}')

	default:
		return buf
	}
}
