// Package plainval normalizes arbitrary decoded values into plain
// JSON-representable ones: strings, numbers, booleans, nil, ordered
// slices and order-preserving maps. Collections without an inherent
// order are sorted so repeated runs produce identical output.
package plainval

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Mapper is implemented by values that know how to represent
// themselves as a plain mapping. It takes precedence over raw
// struct fields during normalization.
type Mapper interface {
	ToMap() map[string]any
}

// ToPlain recursively converts v into a value composed purely of
// primitives, []any slices and *Map mappings. Values it does not
// recognize pass through unchanged so unknown types never break
// the pipeline.
func ToPlain(v any) any {
	if v == nil {
		return nil
	}

	switch t := v.(type) {
	case *Map:
		if t == nil {
			return nil
		}
		out := NewMap()
		for _, key := range t.Keys() {
			val, _ := t.Get(key)
			out.Set(key, ToPlain(val))
		}
		return out
	}

	if m, ok := v.(Mapper); ok {
		return plainFromMap(m.ToMap())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return ToPlain(rv.Elem().Interface())

	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		return plainFromSequence(rv)

	case reflect.Array:
		return plainFromSequence(rv)

	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		if isSetLike(rv.Type()) {
			return plainFromSet(rv)
		}
		return plainFromReflectedMap(rv)

	case reflect.Struct:
		return plainFromStruct(rv)

	default:
		// Primitives and anything else we cannot decompose.
		return v
	}
}

func plainFromSequence(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = ToPlain(rv.Index(i).Interface())
	}
	return out
}

// isSetLike reports whether a map type is a set in disguise, the
// conventional map[T]struct{} encoding.
func isSetLike(t reflect.Type) bool {
	return t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0
}

func plainFromSet(rv reflect.Value) []any {
	out := make([]any, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		out = append(out, ToPlain(key.Interface()))
	}
	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
	})
	return out
}

func plainFromReflectedMap(rv reflect.Value) *Map {
	type pair struct {
		key string
		val any
	}
	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, pair{
			key: fmt.Sprint(iter.Key().Interface()),
			val: iter.Value().Interface(),
		})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	out := NewMap()
	for _, p := range pairs {
		out.Set(p.key, ToPlain(p.val))
	}
	return out
}

func plainFromMap(m map[string]any) *Map {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := NewMap()
	for _, k := range keys {
		out.Set(k, ToPlain(m[k]))
	}
	return out
}

func plainFromStruct(rv reflect.Value) any {
	t := rv.Type()
	out := NewMap()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName := strings.Split(tag, ",")[0]
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out.Set(name, ToPlain(rv.Field(i).Interface()))
	}
	if out.Len() == 0 {
		// Opaque types like time.Time expose no fields; leave them be.
		return rv.Interface()
	}
	return out
}
