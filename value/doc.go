// Package value provides the immutable structured values exchanged by the
// language engines.
//
// A [Value] is one of [Null], [Boolean], [Number], [String], [Array] or
// [Object]. Values are never modified after construction; operations such
// as [Array.Append] and [Object.With] return new values. [String] and
// [Array] share the [Sequence] interface, which is what grammars match
// against. The elements of a String are its Unicode code points, reported
// as Numbers.
//
// Values convert to and from plain Go data with [FromNative] and
// [ToNative], and to and from JSON or YAML text with [Decode],
// [WriteJSON] and [WriteYAML]. Object names keep their insertion order
// through every conversion that can represent order.
package value
