// Package goiq extracts a single value from a nested Go value by a dotted
// path, without converting the whole value into an intermediate tree.
//
// Values are read through the shape protocol of package shape: structs,
// slices, maps, pointers and the helper types of that package describe
// themselves to a visitor, and the lookup only asks the children that lie on
// the path to do so. Lookup stops as soon as the target is found or proven
// absent.
//
// Path tokens name record fields, mapping keys (compared by their JSON text
// with surrounding quotes removed), sequence indexes or variant names.
// Tokens cannot contain '.'.
//
// Typical usage:
//
//	ears, ok := goiq.ExtractPrimitive(car, "driver.ears")
//	text, ok := goiq.ExtractJSON(car, goiq.PathOf("passengers", "0"))
//	n, ok := goiq.ExtractSize(car, "passengers")
//	dog, ok, err := goiq.ExtractValue[Dog](car, "driver")
//
// A path that does not resolve is reported as ok == false, never as an error.
// The Checked variants additionally report *Error when a value fails to emit
// its shape or the target cannot be rendered.
//
// Package template builds on ExtractPrimitive to fill "{path}" placeholders.
package goiq
