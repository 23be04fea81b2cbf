// Package fieldpath parses textual field paths into the key sequences
// accepted by normalize.GetField.
//
// Supported syntax:
//   - "tx.to" or "tx/to" - map keys or struct fields
//   - "logs[0].topics[1]" - slice indexes (decimal or 0x-prefixed hex)
//   - `args["from.addr"]` - quoted keys containing separators or brackets
//
// Bare segments are always string keys, even when they look numeric; use
// brackets to index into sequences.
package fieldpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrInvalidNumber = errors.New("invalid numeric index in path")
)

// Path is a parsed field path. Elements are string keys or int indexes.
type Path []any

// Parse parses a path expression into a Path.
func Parse(input string) (Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	var (
		p       Path
		pending strings.Builder
		// expectKey is set after a separator: a key or bracket must follow.
		expectKey = true
	)

	flush := func() {
		if pending.Len() > 0 {
			p = append(p, pending.String())
			pending.Reset()
		}
	}

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch c {
		case '.', '/':
			if expectKey {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidPath, c, i)
			}
			flush()
			expectKey = true

		case '[':
			flush()
			end := strings.IndexByte(input[i:], ']')
			if input[i+1:min(i+2, len(input))] == `"` {
				end = closingQuote(input, i+1)
			}
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed bracket at offset %d", ErrInvalidPath, i)
			}
			elem, err := parseBracket(input[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			p = append(p, elem)
			i += end
			expectKey = false

		case ']', '"':
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidPath, c, i)

		default:
			if !expectKey && pending.Len() == 0 {
				// A key directly after a bracket needs a separator.
				return nil, fmt.Errorf("%w: missing separator at offset %d", ErrInvalidPath, i)
			}
			pending.WriteByte(c)
			expectKey = false
		}
	}

	if expectKey {
		return nil, fmt.Errorf("%w: trailing separator", ErrInvalidPath)
	}
	flush()
	return p, nil
}

// MustParse is Parse for paths known at compile time. It panics on error.
func MustParse(input string) Path {
	p, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("fieldpath: %v", err))
	}
	return p
}

// closingQuote returns the offset, relative to the opening bracket at
// start-1, of the ']' that follows the quoted key beginning at start.
func closingQuote(input string, start int) int {
	for j := start + 1; j < len(input); j++ {
		switch input[j] {
		case '\\':
			j++
		case '"':
			if j+1 < len(input) && input[j+1] == ']' {
				return j + 1 - (start - 1)
			}
			return -1
		}
	}
	return -1
}

func parseBracket(inner string) (any, error) {
	if strings.HasPrefix(inner, `"`) {
		key, err := strconv.Unquote(inner)
		if err != nil {
			return nil, fmt.Errorf("%w: bad quoted key %s", ErrInvalidPath, inner)
		}
		return key, nil
	}

	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil, fmt.Errorf("%w: empty brackets", ErrInvalidPath)
	}

	base := 10
	digits := inner
	if strings.HasPrefix(inner, "0x") || strings.HasPrefix(inner, "0X") {
		base = 16
		digits = inner[2:]
	}
	n, err := strconv.ParseUint(digits, base, 31)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, inner)
	}
	return int(n), nil
}

// String renders the path in canonical dotted form.
func (p Path) String() string {
	var sb strings.Builder
	for i, elem := range p {
		switch e := elem.(type) {
		case int:
			sb.WriteString("[")
			sb.WriteString(strconv.Itoa(e))
			sb.WriteString("]")
		case string:
			if needsQuoting(e) {
				sb.WriteString("[")
				sb.WriteString(strconv.Quote(e))
				sb.WriteString("]")
				continue
			}
			if i > 0 {
				sb.WriteString(".")
			}
			sb.WriteString(e)
		default:
			fmt.Fprintf(&sb, "[%v]", e)
		}
	}
	return sb.String()
}

func needsQuoting(key string) bool {
	return key == "" || strings.ContainsAny(key, `./[]" `)
}

// Keys returns the path as a plain slice for normalize.GetField.
func (p Path) Keys() []any {
	return []any(p)
}
