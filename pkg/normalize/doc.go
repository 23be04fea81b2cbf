// Package normalize provides the primitive coercions used to normalize raw
// blockchain-style record fields before further processing.
//
// The package offers three groups of helpers:
//   - Type checks: IsIterable, IsRawHex
//   - Coercions: NormalizeHexString, ToHexString, ToBytes, ToInt, ToUint64
//   - Field access: GetFieldAlias, GetField, Field
//
// # Hex Strings
//
// Every coercion goes through a single normalized hex form: lowercase
// base-16 digits, no "0x" marker, even length. Integers are rendered in
// base 16, text is kept as-is when it already parses as a hex number and
// is otherwise hex-encoded from its UTF-8 bytes, and byte sequences are
// hex-encoded directly:
//
//	normalize.ToHexString(255)     // "ff"
//	normalize.ToHexString("0xAB")  // "ab"
//	normalize.ToHexString("hi")    // "6869"
//	normalize.ToHexString([]byte{1}) // "01"
//
// Values of any other type are rejected with ErrUnsupportedType.
//
// # Field Paths
//
// GetField walks a path of keys through nested maps, structs and slices,
// substituting a default for missing segments:
//
//	v := normalize.GetField(record, []string{"tx", "to"}, nil, nil)
//
// A missing segment propagates the default as the dataset for the rest of
// the path, so a scalar default short-circuits the remaining lookups.
//
// All functions are pure and safe for concurrent use.
package normalize
