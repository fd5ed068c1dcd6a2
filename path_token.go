package goiq

import (
	"reflect"

	"github.com/reoring/goiq/shape"
)

// PathTo derives the path of a nested struct field of T from a selector, so
// renaming or removing the field breaks the build instead of the lookup:
//
//	goiq.PathTo(func(c *Car) *int { return &c.Driver.Ears }) // "driver.ears"
//
// Tokens use the emitted field names (iq tag, then json tag, then the Go
// name). Only non-pointer struct nesting is followed.
func PathTo[T any, F any](selector func(*T) *F) Path {
	if selector == nil {
		panic("goiq.PathTo: selector must not be nil")
	}
	var zero T
	target := reflect.ValueOf(selector(&zero)).Pointer()
	keys, ok := findPathKeys(reflect.ValueOf(&zero).Elem(), target, reflect.TypeFor[F](), 0)
	if !ok || len(keys) == 0 {
		panic("goiq.PathTo: selector must return the address of a struct field of T")
	}
	return Path{tokens: keys}
}

const _maxPathDepth = 32

// findPathKeys matches on address and type, since a struct field shares its
// address with its own first field.
func findPathKeys(v reflect.Value, target uintptr, ft reflect.Type, depth int) ([]string, bool) {
	if depth > _maxPathDepth || v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := shape.ResolveFieldKey(sf)
		if name == "-" {
			continue
		}
		fv := v.Field(i)
		if fv.CanAddr() && fv.Addr().Pointer() == target && sf.Type == ft {
			return []string{name}, true
		}
		if fv.Kind() == reflect.Struct {
			if rest, ok := findPathKeys(fv, target, ft, depth+1); ok {
				return append([]string{name}, rest...), true
			}
		}
	}
	return nil, false
}
