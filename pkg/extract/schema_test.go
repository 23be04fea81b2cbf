package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forta-toolkit/fieldnorm-go/pkg/fieldpath"
)

const transferSchema = `name: erc20-transfer
fields:
  - name: to
    path: args.to
    type: hex
    prefix: true
  - name: value
    path: [args, value]
    type: int
    default: 0
  - name: topic
    path: event.signature
    type: keccak256
    required: true
  - name: first_log
    path: [logs, 0]
`

func TestParseSchema(t *testing.T) {
	s, err := ParseSchema([]byte(transferSchema))
	require.NoError(t, err)

	assert.Equal(t, "erc20-transfer", s.Name)
	require.Len(t, s.Fields, 4)

	to := s.Fields[0]
	assert.Equal(t, "to", to.Name)
	assert.Equal(t, fieldpath.Path{"args", "to"}, to.Path)
	assert.Equal(t, TypeHex, to.Type)
	assert.True(t, to.Prefix)
	assert.Equal(t, 3, to.Line)

	value := s.Fields[1]
	assert.Equal(t, fieldpath.Path{"args", "value"}, value.Path)
	assert.Equal(t, 0, value.Default)
	assert.False(t, value.Required)

	assert.True(t, s.Fields[2].Required)
	assert.Equal(t, TypeKeccak, s.Fields[2].Type)

	assert.Equal(t, fieldpath.Path{"logs", 0}, s.Fields[3].Path)
	assert.Equal(t, TypeRaw, s.Fields[3].Type)
}

func TestParseSchema_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"no fields", "name: x\n", ErrEmptySchema},
		{"unknown type", "fields:\n  - name: a\n    path: a\n    type: float\n", ErrUnknownType},
		{"missing path", "fields:\n  - name: a\n", ErrMissingPath},
		{"empty path list", "fields:\n  - name: a\n    path: []\n", ErrMissingPath},
		{"bad path", "fields:\n  - name: a\n    path: a..b\n", fieldpath.ErrInvalidPath},
		{"bad path key", "fields:\n  - name: a\n    path: [a, 1.5]\n", fieldpath.ErrInvalidPath},
		{"map path", "fields:\n  - name: a\n    path: {a: 1}\n", fieldpath.ErrInvalidPath},
		{"empty name", "fields:\n  - path: a\n", ErrEmptyName},
		{"duplicate", "fields:\n  - name: a\n    path: a\n  - name: a\n    path: b\n", ErrDuplicateField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseSchema_LineNumbers(t *testing.T) {
	_, err := ParseSchema([]byte("fields:\n  - name: a\n    path: a\n  - name: b\n    path: b\n    type: nope\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")

	_, err = ParseSchema([]byte("fields:\n  - name: a\n    path: a\n  - name: a\n    path: b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
}

func TestParseSchema_InvalidYAML(t *testing.T) {
	_, err := ParseSchema([]byte("fields: [\n"))
	assert.Error(t, err)
}

func TestLoadSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(transferSchema), 0o644))

	s, err := LoadSchema(path)
	require.NoError(t, err)
	assert.Len(t, s.Fields, 4)

	_, err = LoadSchema(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	got, err := ParseType("")
	require.NoError(t, err)
	assert.Equal(t, TypeRaw, got)

	for _, name := range []string{"hex", "bytes", "int", "uint64", "raw", "keccak256"} {
		got, err := ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, Type(name), got)
	}

	_, err = ParseType("HEX")
	assert.ErrorIs(t, err, ErrUnknownType)
}
