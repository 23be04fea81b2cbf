package normalize

import "errors"

// Coercion errors.
var (
	ErrUnsupportedType = errors.New("unsupported value type")
	ErrInvalidHex      = errors.New("invalid hex string")
	ErrOverflow        = errors.New("value overflows target type")
)
