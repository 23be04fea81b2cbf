package normalize

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"strings"
)

// IsRawHex reports whether v is a string that parses as a base-16 integer.
//
// Accepted grammar, surrounding whitespace ignored:
//
//	[+-]? ("0x" | "0X")? digit ("_"? digit)*
//
// where digit is [0-9a-fA-F] and a single underscore may also directly
// follow the prefix ("0x_ff"). Non-string values are never raw hex, byte
// slices included: their contents are data, not a literal to parse.
func IsRawHex(v any) bool {
	s, ok := asString(v)
	if !ok {
		return false
	}
	return isHexLiteral(s)
}

func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func isHexLiteral(s string) bool {
	s = strings.TrimSpace(s)
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}

	// An underscore is allowed after the prefix or after a digit, never twice in a row.
	underscoreOK := false
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
		underscoreOK = true
	}
	if s == "" {
		return false
	}

	lastDigit := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isHexDigit(c):
			lastDigit = true
			underscoreOK = true
		case c == '_' && underscoreOK:
			lastDigit = false
			underscoreOK = false
		default:
			return false
		}
	}
	return lastDigit
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// NormalizeHexString lowercases s, removes every "0x" substring and
// left-pads the result with one '0' when its length is odd.
//
// The "0x" removal is a textual replace anywhere in the string, not a
// prefix strip. s is expected to hold hex digits already; other
// characters are passed through untouched.
func NormalizeHexString(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), "0x", "")
	if len(s)%2 != 0 {
		return "0" + s
	}
	return s
}

// ToHexString converts v to a normalized hex string.
//
//   - Integer: base-16 digits. Negative values keep their sign ("-5"), which
//     ToInt accepts and ToBytes rejects.
//   - Text: kept as-is when IsRawHex, otherwise its UTF-8 bytes are encoded.
//   - Bytes: encoded directly.
//   - Other: fails with ErrUnsupportedType.
func ToHexString(v any) (string, error) {
	var raw string
	switch val := Classify(v).(type) {
	case Integer:
		if val.Int.Sign() < 0 {
			raw = "-" + new(big.Int).Abs(val.Int).Text(16)
		} else {
			raw = val.Int.Text(16)
		}
	case Text:
		if isHexLiteral(string(val)) {
			raw = string(val)
		} else {
			raw = hex.EncodeToString([]byte(val))
		}
	case Bytes:
		raw = hex.EncodeToString(val)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	return NormalizeHexString(raw), nil
}

// ToBytes converts v to the bytes its normalized hex string encodes.
func ToBytes(v any) ([]byte, error) {
	h, err := ToHexString(v)
	if err != nil {
		return nil, err
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidHex, h, err)
	}
	return b, nil
}

// ToInt converts v to the integer its normalized hex string encodes.
//
// The normalized string is parsed with the IsRawHex grammar, so a sign,
// digit-separating underscores and surrounding whitespace are accepted.
func ToInt(v any) (*big.Int, error) {
	h, err := ToHexString(v)
	if err != nil {
		return nil, err
	}
	if !isHexLiteral(h) {
		return nil, fmt.Errorf("%w %q", ErrInvalidHex, h)
	}
	digits := strings.ReplaceAll(strings.TrimSpace(h), "_", "")
	n, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrInvalidHex, h)
	}
	return n, nil
}

// ToUint64 is ToInt for values known to fit in 64 bits.
func ToUint64(v any) (uint64, error) {
	n, err := ToInt(v)
	if err != nil {
		return 0, err
	}
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s does not fit in uint64", ErrOverflow, n)
	}
	return n.Uint64(), nil
}
