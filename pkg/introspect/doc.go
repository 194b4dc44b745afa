// Package introspect defines the contract between the tree serializer and a
// live widget toolkit.
//
// A toolkit exposes its object graph through a [Provider]: class names,
// per-class property descriptors ([Param]), current values ([Value]),
// children, parents and packing (child) properties. The serializer in
// pkg/dump only ever talks to a Provider, so any toolkit that can describe
// its widgets this way can be dumped, whether the descriptors come from
// runtime reflection or from a generated table.
//
// # Identity
//
// A [Widget] is an opaque handle. Providers must hand out handles with
// reference identity (pointers), because the serializer uses them as map
// keys to resolve cross references between widgets.
//
// # Values
//
// [Value] is a small tagged union over the property kinds the serializer
// knows how to stringify:
//
//	introspect.EnumValue(1)
//	introspect.FlagsValue(0x300)
//	introspect.StringValue("Click")
//	introspect.NullString()
//	introspect.BoolValue(true)
//	introspect.IntValue(-1)
//	introspect.Int64Value(1 << 40)
//	introspect.ObjectValue(w)
//	introspect.OtherValue(0.5)
package introspect
