package normalize

import (
	"encoding/json"
	"math/big"
	"reflect"
)

// Kind identifies the branch of a Value.
type Kind uint8

const (
	// KindOther is any value without a hex form.
	KindOther Kind = iota
	// KindInteger is a signed or unsigned integer of any width.
	KindInteger
	// KindText is a string.
	KindText
	// KindBytes is a byte slice or byte array.
	KindBytes
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	default:
		return "other"
	}
}

// Value is the closed set of inputs the coercions understand.
// The concrete types are Integer, Text, Bytes and Other.
type Value interface {
	Kind() Kind
	sealed()
}

// Integer holds an arbitrary precision integer. Int is never nil.
type Integer struct {
	Int *big.Int
}

// Text holds a string input.
type Text string

// Bytes holds a byte sequence input.
type Bytes []byte

// Other holds an input of an unsupported type.
type Other struct {
	V any
}

func (Integer) Kind() Kind { return KindInteger }
func (Text) Kind() Kind    { return KindText }
func (Bytes) Kind() Kind   { return KindBytes }
func (Other) Kind() Kind   { return KindOther }

func (Integer) sealed() {}
func (Text) sealed()    {}
func (Bytes) sealed()   {}
func (Other) sealed()   {}

// Classify maps a Go value onto the Value union.
//
// Named types are classified by their underlying kind, so a custom
// `type Address [20]byte` is Bytes and `type Wei uint64` is Integer.
// json.Number is an Integer when it holds a decimal integer and Other
// otherwise; decoders that keep numbers as json.Number would otherwise
// have their digits reinterpreted as hex text.
func Classify(v any) Value {
	switch x := v.(type) {
	case nil:
		return Other{}
	case int:
		return Integer{big.NewInt(int64(x))}
	case int8:
		return Integer{big.NewInt(int64(x))}
	case int16:
		return Integer{big.NewInt(int64(x))}
	case int32:
		return Integer{big.NewInt(int64(x))}
	case int64:
		return Integer{big.NewInt(x)}
	case uint:
		return Integer{new(big.Int).SetUint64(uint64(x))}
	case uint8:
		return Integer{new(big.Int).SetUint64(uint64(x))}
	case uint16:
		return Integer{new(big.Int).SetUint64(uint64(x))}
	case uint32:
		return Integer{new(big.Int).SetUint64(uint64(x))}
	case uint64:
		return Integer{new(big.Int).SetUint64(x)}
	case *big.Int:
		if x == nil {
			return Other{V: v}
		}
		return Integer{new(big.Int).Set(x)}
	case big.Int:
		return Integer{new(big.Int).Set(&x)}
	case json.Number:
		n, ok := new(big.Int).SetString(string(x), 10)
		if !ok {
			return Other{V: v}
		}
		return Integer{n}
	case string:
		return Text(x)
	case []byte:
		return Bytes(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer{big.NewInt(rv.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Integer{new(big.Int).SetUint64(rv.Uint())}
	case reflect.String:
		return Text(rv.String())
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			break
		}
		b := make([]byte, rv.Len())
		for i := range b {
			b[i] = byte(rv.Index(i).Uint())
		}
		return Bytes(b)
	}
	return Other{V: v}
}
