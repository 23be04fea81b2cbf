package normalize

import "reflect"

// IsIterable reports whether v can be traversed element by element with a
// range loop: slices, arrays, non-nil pointers to arrays, maps, strings,
// receivable channels and range-over-func iterators.
//
// Integers are not iterable even though Go can range over them; they are
// counts, not sequences. Any panic raised while inspecting v is reported
// as false.
func IsIterable(v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return true
	case reflect.Chan:
		return rv.Type().ChanDir()&reflect.RecvDir != 0
	case reflect.Pointer:
		return !rv.IsNil() && rv.Elem().Kind() == reflect.Array
	case reflect.Func:
		return !rv.IsNil() && isRangeFunc(rv.Type())
	default:
		return false
	}
}

// isRangeFunc matches func(yield func() bool), func(yield func(K) bool)
// and func(yield func(K, V) bool).
func isRangeFunc(t reflect.Type) bool {
	if t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumIn() > 2 || yield.NumOut() != 1 {
		return false
	}
	return yield.Out(0).Kind() == reflect.Bool
}
