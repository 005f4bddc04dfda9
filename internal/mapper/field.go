package mapper

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// TagName is the struct tag key read by Fields.
const TagName = "janconf"

// Field describes an exported struct field that maps to a document key.
type Field struct {
	Name      string
	Index     []int
	OmitEmpty bool
}

// fieldCache caches the field list for a given struct type.
var fieldCache sync.Map

// Fields returns the mappable fields of struct type t in declaration order.
// It skips unexported fields and fields tagged with `janconf:"-"`. Fields of
// untagged embedded structs are promoted into t; when two fields share a
// name the shallower one wins, and at equal depth the first declared. The
// result is ordered by field position.
func Fields(t reflect.Type) []Field {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]Field)
	}

	all := typeFields(t, nil, map[reflect.Type]bool{t: true})
	fields := make([]Field, 0, len(all))
	pos := make(map[string]int, len(all))
	for _, f := range all {
		i, ok := pos[f.Name]
		if !ok {
			pos[f.Name] = len(fields)
			fields = append(fields, f)
			continue
		}
		if len(f.Index) < len(fields[i].Index) {
			fields[i] = f
		}
	}
	slices.SortStableFunc(fields, func(a, b Field) int {
		return slices.Compare(a.Index, b.Index)
	})

	fieldCache.Store(t, fields)
	return fields
}

func typeFields(t reflect.Type, index []int, seen map[reflect.Type]bool) []Field {
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		idx := make([]int, len(index)+1)
		copy(idx, index)
		idx[len(index)] = i

		if sf.Anonymous && name == "" {
			ft := sf.Type
			ptr := ft.Kind() == reflect.Pointer
			if ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				// An unexported embedded pointer cannot be allocated.
				if (ptr && !sf.IsExported()) || seen[ft] {
					continue
				}
				seen[ft] = true
				fields = append(fields, typeFields(ft, idx, seen)...)
				delete(seen, ft)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		f := Field{Name: sf.Name, Index: idx}
		if name != "" {
			f.Name = name
		}
		for opts != "" {
			var opt string
			opt, opts, _ = strings.Cut(opts, ",")
			if strings.TrimSpace(opt) == "omitempty" {
				f.OmitEmpty = true
			}
		}
		fields = append(fields, f)
	}
	return fields
}

// Value returns the field of struct v at index. It reports false when a nil
// embedded pointer lies on the path.
func Value(v reflect.Value, index []int) (reflect.Value, bool) {
	fv, err := v.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, false
	}
	return fv, true
}

// Settable returns the field of struct v at index, allocating nil embedded
// pointers on the path. v must be settable.
func Settable(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// Lookup finds the field for key, preferring an exact match and falling back
// to a case-insensitive one.
func Lookup(t reflect.Type, key string) (Field, bool) {
	fields := Fields(t)
	for _, f := range fields {
		if f.Name == key {
			return f, true
		}
	}
	for _, f := range fields {
		if strings.EqualFold(f.Name, key) {
			return f, true
		}
	}
	return Field{}, false
}

// IsEmptyValue reports whether the value v is empty.
// It is equivalent to the `encoding/json` definition of empty:
// false, 0, a nil pointer, a nil interface value, and any empty array,
// slice, map, or string.
func IsEmptyValue(v reflect.Value) bool {
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
