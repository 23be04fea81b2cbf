package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type transfer struct {
	From   string `json:"from"`
	To     string `yaml:"recipient"`
	Amount uint64 `cbor:"3,keyasint"`
	Log    *logEntry
	hidden string
}

type logEntry struct {
	Topics []string `json:"topics"`
	Data   map[string]any
}

type staticLookup map[string]int

func (s staticLookup) LookupField(key any) (any, bool) {
	k, ok := key.(string)
	if !ok {
		return nil, false
	}
	v, ok := s[strings.ToLower(k)]
	return v, ok
}

func TestGetFieldAlias_Map(t *testing.T) {
	data := map[string]any{"a": 1}
	assert.Equal(t, 1, GetFieldAlias(data, "a", nil))
	assert.Equal(t, 0, GetFieldAlias(data, "b", 0))

	// Present keys win over the default, even when the value is nil.
	assert.Nil(t, GetFieldAlias(map[string]any{"a": nil}, "a", 5))
}

func TestGetFieldAlias_MapKeyTypes(t *testing.T) {
	type key string
	named := map[key]int{"x": 1}
	assert.Equal(t, 1, GetFieldAlias(named, "x", -1))

	// A string key never matches an int-keyed map.
	assert.Equal(t, -1, GetFieldAlias(map[int]int{1: 1}, "1", -1))

	// Interface-keyed maps accept any integer width.
	decoded := map[any]any{uint64(1): "one", 2: "two"}
	assert.Equal(t, "one", GetFieldAlias(decoded, 1, nil))
	assert.Equal(t, "two", GetFieldAlias(decoded, uint8(2), nil))

	// Unhashable keys are a miss, not a panic.
	assert.Equal(t, "d", GetFieldAlias(map[any]any{}, []int{1}, "d"))
}

func TestGetFieldAlias_Struct(t *testing.T) {
	tr := transfer{From: "0xa", To: "0xb", Amount: 7, hidden: "secret"}

	assert.Equal(t, "0xa", GetFieldAlias(tr, "From", nil))
	assert.Equal(t, "0xa", GetFieldAlias(tr, "from", nil))
	assert.Equal(t, "0xb", GetFieldAlias(&tr, "recipient", nil))
	assert.Equal(t, uint64(7), GetFieldAlias(tr, "3", nil))
	assert.Equal(t, "d", GetFieldAlias(tr, "hidden", "d"))
	assert.Equal(t, "d", GetFieldAlias(tr, "missing", "d"))
	assert.Equal(t, "d", GetFieldAlias(tr, 1, "d"))
	assert.Equal(t, "d", GetFieldAlias((*transfer)(nil), "From", "d"))
}

func TestGetFieldAlias_Index(t *testing.T) {
	list := []string{"a", "b"}
	assert.Equal(t, "b", GetFieldAlias(list, 1, nil))
	assert.Equal(t, "d", GetFieldAlias(list, 2, "d"))
	assert.Equal(t, "d", GetFieldAlias(list, -1, "d"))
	assert.Equal(t, "d", GetFieldAlias(list, "0", "d"))
	assert.Equal(t, 3, GetFieldAlias([2]int{2, 3}, 1, nil))
}

func TestGetFieldAlias_FieldLookup(t *testing.T) {
	s := staticLookup{"value": 3}
	assert.Equal(t, 3, GetFieldAlias(s, "VALUE", nil))
	assert.Equal(t, 0, GetFieldAlias(s, "other", 0))
}

func TestGetFieldAlias_Scalars(t *testing.T) {
	for _, ds := range []any{nil, 42, "text", 1.5, true} {
		assert.Equal(t, "d", GetFieldAlias(ds, "a", "d"), "dataset %#v", ds)
	}
	assert.Equal(t, "d", GetFieldAlias(map[string]int{"a": 1}, nil, "d"))
}

func TestGetField(t *testing.T) {
	nested := map[string]any{"a": map[string]any{"b": 5}}

	tests := []struct {
		name    string
		dataset any
		keys    any
		def     any
		want    any
	}{
		{"single string key", map[string]any{"a": 1}, "a", nil, 1},
		{"one element path", map[string]any{"a": 1}, []string{"a"}, nil, 1},
		{"nested path", nested, []string{"a", "b"}, nil, 5},
		{"any path", nested, []any{"a", "b"}, nil, 5},
		{"array path", nested, [2]string{"a", "b"}, nil, 5},
		{"missing leaf", map[string]any{"a": map[string]any{}}, []string{"a", "b"}, 99, 99},
		{"fetched value is not the default", map[string]any{"a": map[string]any{"x": 1}}, []string{"a", "b"}, 99, 99},
		{"missing middle", map[string]any{}, []string{"a", "b", "c"}, 99, 99},
		{"empty path", map[string]any{}, []string{}, nil, nil},
		{"nil keys", nested, nil, "d", "d"},
		{"non-sequence keys", nested, 5, "d", "d"},
		{"string key is not split", map[string]any{"a.b": 1}, "a.b", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetField(tt.dataset, tt.keys, tt.def, nil))
		})
	}
}

func TestGetField_MixedContainers(t *testing.T) {
	record := map[string]any{
		"tx": &transfer{
			From: "0xa",
			Log: &logEntry{
				Topics: []string{"0xddf2", "0x01"},
				Data:   map[string]any{"value": "0x10"},
			},
		},
	}

	assert.Equal(t, "0xa", GetField(record, []string{"tx", "from"}, nil, nil))
	assert.Equal(t, "0x01", GetField(record, []any{"tx", "Log", "topics", 1}, nil, nil))
	assert.Equal(t, "0x10", GetField(record, []string{"tx", "Log", "Data", "value"}, nil, nil))
}

func TestGetField_ContainerDefaultIsSearched(t *testing.T) {
	// A missing segment makes the default the dataset for the rest of the path.
	def := map[string]any{"b": "from default"}
	got := GetField(map[string]any{}, []string{"a", "b"}, def, nil)
	assert.Equal(t, "from default", got)
}

func TestGetField_CallbackAppliedOnce(t *testing.T) {
	calls := 0
	double := func(v any) any {
		calls++
		return v.(int) * 2
	}

	nested := map[string]any{"a": map[string]any{"b": map[string]any{"c": 4}}}
	assert.Equal(t, 8, GetField(nested, []string{"a", "b", "c"}, 0, double))
	assert.Equal(t, 1, calls)

	calls = 0
	assert.Equal(t, 2, GetField(nested, 7, 1, double))
	assert.Equal(t, 1, calls)

	calls = 0
	assert.Equal(t, 0, GetField(nested, []string{"x", "y"}, 0, double))
	assert.Equal(t, 1, calls)
}

func TestField(t *testing.T) {
	record := map[string]any{"n": 3, "s": "x"}
	assert.Equal(t, 3, Field(record, "n", 0))
	assert.Equal(t, 0, Field(record, "s", 0))
	assert.Equal(t, "x", Field(record, []string{"s"}, ""))
	assert.Equal(t, "fallback", Field(record, "missing", "fallback"))
}
