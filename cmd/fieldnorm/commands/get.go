package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/forta-toolkit/fieldnorm-go/pkg/extract"
	"github.com/forta-toolkit/fieldnorm-go/pkg/fieldpath"
	"github.com/forta-toolkit/fieldnorm-go/pkg/normalize"
	"github.com/forta-toolkit/fieldnorm-go/pkg/record"
)

// GetOptions configures the get command.
type GetOptions struct {
	// Path is the field path expression.
	Path string

	// As is the coercion applied to each value (extract type name).
	As string

	// Default replaces missing values. nil prints "null".
	Default any

	// Files are the record files to read.
	Files []string
}

// RunGet prints the value at opts.Path for every record in opts.Files,
// one line per record.
func RunGet(opts GetOptions, w io.Writer, logger *slog.Logger) error {
	p, err := fieldpath.Parse(opts.Path)
	if err != nil {
		return err
	}
	t, err := extract.ParseType(opts.As)
	if err != nil {
		return err
	}

	for _, file := range opts.Files {
		records, format, err := record.DecodeFile(file)
		if err != nil {
			return err
		}
		logger.Debug("decoded records", "file", file, "format", format.String(), "count", len(records))

		for i, rec := range records {
			v := normalize.GetField(rec, p, opts.Default, nil)
			out, err := extract.Coerce(v, t, t == extract.TypeHex || t == extract.TypeKeccak)
			if err != nil {
				return fmt.Errorf("%s record %d: %s: %w", file, i, p, err)
			}
			fmt.Fprintln(w, FormatValue(out))
		}
	}
	return nil
}
