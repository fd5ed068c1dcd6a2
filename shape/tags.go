package shape

import (
	"reflect"
	"strings"
	"sync"
)

// ResolveFieldKey applies the module-wide rule to resolve the name under
// which a struct field is emitted.
// Priority: iq:"name=..." > json tag name > field name; "-" disables the field.
func ResolveFieldKey(sf reflect.StructField) string {
	if it := sf.Tag.Get("iq"); it != "" {
		for _, p := range strings.Split(it, ",") {
			p = strings.TrimSpace(p)
			if p == "-" {
				return "-"
			}
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if i == 0 {
				return sf.Name
			}
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

func hasOmitEmpty(sf reflect.StructField) bool {
	jt := sf.Tag.Get("json")
	i := strings.IndexByte(jt, ',')
	if i < 0 {
		return false
	}
	for _, opt := range strings.Split(jt[i+1:], ",") {
		if opt == "omitempty" {
			return true
		}
	}
	return false
}

type fieldInfo struct {
	name      string
	index     int
	omitEmpty bool
}

var _fieldCache sync.Map // reflect.Type -> []fieldInfo

// structFields lists the emitted fields of t in declaration order.
// Embedded structs are not flattened; they are emitted as a field named
// after their type unless tagged otherwise.
func structFields(t reflect.Type) []fieldInfo {
	if cached, ok := _fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}
	fields := make([]fieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveFieldKey(sf)
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, fieldInfo{name: name, index: i, omitEmpty: hasOmitEmpty(sf)})
	}
	actual, _ := _fieldCache.LoadOrStore(t, fields)
	return actual.([]fieldInfo)
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
