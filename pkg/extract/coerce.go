package extract

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/forta-toolkit/fieldnorm-go/pkg/normalize"
)

// Coerce converts v according to t. prefix adds "0x" to hex and keccak256
// results.
func Coerce(v any, t Type, prefix bool) (any, error) {
	switch t {
	case TypeRaw, "":
		return v, nil
	case TypeHex:
		h, err := normalize.ToHexString(v)
		if err != nil {
			return nil, err
		}
		return withPrefix(h, prefix), nil
	case TypeBytes:
		return normalize.ToBytes(v)
	case TypeInt:
		return normalize.ToInt(v)
	case TypeUint64:
		return normalize.ToUint64(v)
	case TypeKeccak:
		h, err := Keccak256Hex(v)
		if err != nil {
			return nil, err
		}
		return withPrefix(h, prefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

// Keccak256Hex hashes the bytes of v, as produced by normalize.ToBytes,
// with legacy Keccak-256 and returns the digest as a hex string.
//
// Text that is not raw hex is hashed as UTF-8, so an event signature such
// as "Transfer(address,address,uint256)" yields its log topic.
func Keccak256Hex(v any) (string, error) {
	b, err := normalize.ToBytes(v)
	if err != nil {
		return "", err
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// withPrefix adds "0x" after any leading sign.
func withPrefix(h string, prefix bool) string {
	if !prefix {
		return h
	}
	if rest, ok := strings.CutPrefix(h, "-"); ok {
		return "-0x" + rest
	}
	return "0x" + h
}
