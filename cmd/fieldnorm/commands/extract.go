package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/forta-toolkit/fieldnorm-go/pkg/extract"
	"github.com/forta-toolkit/fieldnorm-go/pkg/log"
	"github.com/forta-toolkit/fieldnorm-go/pkg/record"
)

// ExtractOptions configures the extract command.
type ExtractOptions struct {
	// Schema is a schema file or a "builtin:<name>" reference.
	Schema string
	Files  []string

	// Format is the output encoding (json, yaml, cbor).
	Format string

	// Output is the output file (default: the writer passed to RunExtract).
	Output string

	// Events is an optional .flog file receiving extraction events.
	Events string

	// RunID overrides the generated run identifier.
	RunID string
}

// RunExtract applies the schema to every record and writes one result per
// record in the requested format. Failures closing the output file or the
// event log are returned when nothing else failed first.
func RunExtract(opts ExtractOptions, w io.Writer, logger *slog.Logger) (err error) {
	schema, err := extract.ResolveSchema(opts.Schema)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	format := record.FormatJSON
	if opts.Format != "" {
		if format, err = record.ParseFormat(opts.Format); err != nil {
			return err
		}
	}

	loggers := []log.Logger{log.NewSlogAdapter(logger)}
	var events *log.FileLogger
	if opts.Events != "" {
		if events, err = log.NewFileLogger(opts.Events); err != nil {
			return fmt.Errorf("failed to open event log: %w", err)
		}
		defer closeInto(&err, events, "failed to write event log")
		loggers = append(loggers, events)
	}

	ex, err := extract.New(schema,
		extract.WithLogger(log.NewMultiLogger(loggers...)),
		extract.WithRunID(opts.RunID),
	)
	if err != nil {
		return err
	}
	logger.Info("extraction started", "schema", schema.Name, "run_id", ex.RunID(), "files", len(opts.Files))

	if opts.Output != "" {
		f, ferr := os.Create(opts.Output)
		if ferr != nil {
			return fmt.Errorf("failed to create output file: %w", ferr)
		}
		defer closeInto(&err, f, "failed to close output file")
		w = f
	}

	write, flush, err := record.NewEncoder(w, format)
	if err != nil {
		return err
	}

	total := 0
	for _, file := range opts.Files {
		records, _, err := record.DecodeFile(file)
		if err != nil {
			return err
		}
		results, err := ex.ExtractAll(records)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		for _, r := range results {
			var out any = r.Map()
			if format == record.FormatYAML {
				out = r
			}
			if err := write(out); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
		}
		total += len(results)
	}

	attrs := []any{"run_id", ex.RunID(), "records", total}
	if events != nil {
		c := events.Counts()
		attrs = append(attrs, "extracted", c.Extracted, "defaulted", c.Defaulted, "failed", c.Failed)
	}
	logger.Info("extraction finished", attrs...)
	return flush()
}

// closeInto closes c and stores its error in *err unless an earlier error
// is already set.
func closeInto(err *error, c io.Closer, msg string) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("%s: %w", msg, cerr)
	}
}
