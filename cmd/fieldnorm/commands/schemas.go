package commands

import (
	"fmt"
	"io"

	"github.com/forta-toolkit/fieldnorm-go/pkg/extract"
)

// RunSchemas lists the builtin schemas with their field names.
func RunSchemas(w io.Writer) error {
	names, err := extract.BuiltinSchemas()
	if err != nil {
		return err
	}
	for _, name := range names {
		s, err := extract.LoadBuiltin(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s%s\n", extract.BuiltinPrefix, name)
		for _, f := range s.Fields {
			req := ""
			if f.Required {
				req = " (required)"
			}
			fmt.Fprintf(w, "  %-8s %-10s %s%s\n", f.Name, f.Type, f.Path, req)
		}
	}
	return nil
}
