// Package commands implements the fieldnorm CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/forta-toolkit/fieldnorm-go/pkg/record"
)

// FormatValue renders a resolved or coerced value for terminal output:
// byte values as 0x-prefixed hex, integers in decimal, containers as JSON
// when possible.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case *big.Int:
		return x.String()
	case fmt.Stringer:
		return x.String()
	}

	if out, err := record.Encode(v, record.FormatJSON); err == nil {
		return string(out)
	}
	return fmt.Sprintf("%v", v)
}
