// Package record decodes raw records into generic Go values that
// normalize.GetField can walk.
//
// Three encodings are supported:
//   - JSON: numbers are kept as json.Number so large integers (wei
//     amounts, block numbers) keep every digit
//   - YAML: decoded with gopkg.in/yaml.v3
//   - CBOR: decoded leniently (duplicate keys, indefinite lengths) with
//     bignum tags mapped to big.Int
//
// Maps decoded from YAML and CBOR may have non-string keys; the field
// accessors in package normalize handle both.
package record
