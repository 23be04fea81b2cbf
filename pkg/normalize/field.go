package normalize

import (
	"reflect"
	"strings"
)

// FieldLookup is implemented by containers that resolve keys themselves.
// It takes precedence over the reflective map, struct and slice lookups.
type FieldLookup interface {
	LookupField(key any) (any, bool)
}

// Callback transforms the value resolved by GetField.
type Callback func(any) any

func identity(v any) any { return v }

// structTags are the tag names consulted when no struct field is named key.
var structTags = []string{"json", "yaml", "cbor"}

// GetFieldAlias returns dataset[key], or def when the key is missing.
//
// The lookup strategy depends on what dataset supports, checked in order:
//   - FieldLookup: its LookupField method
//   - maps: the entry for key
//   - structs and pointers to structs: the exported field named key, then
//     the field whose json, yaml or cbor tag name is key
//   - slices and arrays: the element at integer index key
//
// Anything else, including nil, yields def.
func GetFieldAlias(dataset, key, def any) any {
	if v, ok := lookup(dataset, key); ok {
		return v
	}
	return def
}

// GetField resolves a path of keys through nested containers.
//
// keys is either a single string key or a slice or array of keys. Each key
// is resolved with GetFieldAlias against the value fetched for the previous
// key. When a segment is missing, def becomes the dataset for the rest of
// the path: a scalar def then short-circuits every remaining lookup back to
// def, while a container def is searched like any other dataset.
//
// Keys that are neither a string nor a non-empty sequence resolve to def.
// callback, or the identity when nil, is applied exactly once to the final
// value.
func GetField(dataset, keys, def any, callback Callback) any {
	if callback == nil {
		callback = identity
	}
	return getField(dataset, keys, def, callback)
}

func getField(dataset, keys, def any, callback Callback) any {
	if key, ok := keys.(string); ok {
		return callback(GetFieldAlias(dataset, key, def))
	}

	path, ok := keySequence(keys)
	if ok {
		switch {
		case len(path) == 1:
			return callback(GetFieldAlias(dataset, path[0], def))
		case len(path) > 1:
			next := GetFieldAlias(dataset, path[0], def)
			return getField(next, path[1:], def, callback)
		}
	}
	return callback(def)
}

// Field is GetField for callers expecting a T. It returns def when the
// resolved value is not a T.
func Field[T any](dataset, keys any, def T) T {
	if v, ok := GetField(dataset, keys, def, nil).(T); ok {
		return v
	}
	return def
}

func keySequence(keys any) ([]any, bool) {
	switch k := keys.(type) {
	case nil:
		return nil, false
	case []any:
		return k, true
	case []string:
		path := make([]any, len(k))
		for i, s := range k {
			path[i] = s
		}
		return path, true
	}

	rv := reflect.ValueOf(keys)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	path := make([]any, rv.Len())
	for i := range path {
		path[i] = rv.Index(i).Interface()
	}
	return path, true
}

func lookup(dataset, key any) (v any, ok bool) {
	defer func() {
		if recover() != nil {
			v, ok = nil, false
		}
	}()

	if dataset == nil || key == nil {
		return nil, false
	}
	if fl, isLookup := dataset.(FieldLookup); isLookup {
		return fl.LookupField(key)
	}

	rv := reflect.ValueOf(dataset)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		return lookupMap(rv, key)
	case reflect.Struct:
		return lookupStruct(rv, key)
	case reflect.Slice, reflect.Array:
		return lookupIndex(rv, key)
	default:
		return nil, false
	}
}

func lookupMap(m reflect.Value, key any) (any, bool) {
	kt := m.Type().Key()
	if v, ok := mapIndex(m, kt, reflect.ValueOf(key)); ok {
		return v, true
	}

	// Decoders disagree on integer key types (CBOR yields uint64, YAML int),
	// so interface-keyed maps are retried with the common integer widths.
	if kt.Kind() != reflect.Interface {
		return nil, false
	}
	n, isInt := integerKey(key)
	if !isInt {
		return nil, false
	}
	alternates := []any{int(n), int64(n)}
	if n >= 0 {
		alternates = append(alternates, uint64(n))
	}
	for _, alt := range alternates {
		if v, ok := mapIndex(m, kt, reflect.ValueOf(alt)); ok {
			return v, true
		}
	}
	return nil, false
}

func mapIndex(m reflect.Value, kt reflect.Type, kv reflect.Value) (any, bool) {
	switch {
	case kv.Type().AssignableTo(kt):
	case kv.Kind() == kt.Kind() && kv.Type().ConvertibleTo(kt):
		kv = kv.Convert(kt)
	default:
		return nil, false
	}
	val := m.MapIndex(kv)
	if !val.IsValid() {
		return nil, false
	}
	return val.Interface(), true
}

func lookupStruct(s reflect.Value, key any) (any, bool) {
	name, ok := asString(key)
	if !ok || name == "" {
		return nil, false
	}

	t := s.Type()
	if sf, found := t.FieldByName(name); found && sf.IsExported() {
		return s.FieldByIndex(sf.Index).Interface(), true
	}

	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		for _, tag := range structTags {
			if tagName(sf.Tag.Get(tag)) == name {
				return s.FieldByIndex(sf.Index).Interface(), true
			}
		}
	}
	return nil, false
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}

func lookupIndex(seq reflect.Value, key any) (any, bool) {
	n, ok := integerKey(key)
	if !ok || n < 0 || n >= int64(seq.Len()) {
		return nil, false
	}
	return seq.Index(int(n)).Interface(), true
}

func integerKey(key any) (int64, bool) {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}
