package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned when a record format cannot be determined.
var ErrUnknownFormat = errors.New("unknown record format")

// Format identifies a record encoding.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatYAML
	FormatCBOR
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "jsonl":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q (supported: json, yaml, cbor)", ErrUnknownFormat, s)
	}
}

// encMode is the CBOR encoder mode for records.
// Configured for deterministic output.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for records.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		BigIntConvert: cbor.BigIntConvertShortest,
		Time:          cbor.TimeUnix,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Lenient decoding: records come from third-party producers.
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
		BigIntDec:         cbor.BigIntDecodePointer,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// DetectFormat guesses the format of a record from its file name, falling
// back to the first significant byte of data.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonl":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".cbor":
		return FormatCBOR
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	switch trimmed[0] {
	case '{', '[':
		return FormatJSON
	}
	// CBOR maps and arrays carry major types 4 and 5 in the top three bits.
	if major := data[0] >> 5; major == 4 || major == 5 {
		return FormatCBOR
	}
	return FormatYAML
}

// Decode decodes a single record.
func Decode(data []byte, f Format) (any, error) {
	var v any
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode json record: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode yaml record: %w", err)
		}
	case FormatCBOR:
		if err := decMode.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode cbor record: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return v, nil
}

// DecodeAll decodes a stream of records: JSON lines or concatenated JSON
// values, a multi-document YAML stream, or a CBOR sequence.
func DecodeAll(r io.Reader, f Format) ([]any, error) {
	var (
		records []any
		next    func(*any) error
	)
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		next = func(v *any) error { return dec.Decode(v) }
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		next = func(v *any) error { return dec.Decode(v) }
	case FormatCBOR:
		dec := decMode.NewDecoder(r)
		next = func(v *any) error { return dec.Decode(v) }
	default:
		return nil, ErrUnknownFormat
	}

	for {
		var v any
		if err := next(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, fmt.Errorf("failed to decode %s record %d: %w", f, len(records)+1, err)
		}
		records = append(records, v)
	}
}

// DecodeFile reads every record in the file at path, detecting the format
// from its extension or content.
func DecodeFile(path string) ([]any, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, FormatUnknown, err
	}
	f := DetectFormat(path, data)
	if f == FormatUnknown {
		return nil, f, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	records, err := DecodeAll(bytes.NewReader(data), f)
	if err != nil {
		return nil, f, fmt.Errorf("%s: %w", path, err)
	}
	return records, f, nil
}

// Encode encodes v in the given format. CBOR output is canonical.
func Encode(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.Marshal(v)
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatCBOR:
		return encMode.Marshal(v)
	default:
		return nil, ErrUnknownFormat
	}
}

// NewEncoder returns a function writing successive values to w in format f.
// JSON values are newline-delimited and YAML values are separate documents.
func NewEncoder(w io.Writer, f Format) (func(v any) error, func() error, error) {
	noop := func() error { return nil }
	switch f {
	case FormatJSON:
		return json.NewEncoder(w).Encode, noop, nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return enc.Encode, enc.Close, nil
	case FormatCBOR:
		return encMode.NewEncoder(w).Encode, noop, nil
	default:
		return nil, nil, ErrUnknownFormat
	}
}
