// Package log provides structured capture of field extraction events.
//
// This package defines the Logger interface and the Event type recorded
// for every field an extractor resolves. It is separate from operational
// logging (slog): the event trace is machine-readable and meant for
// auditing which record fields fell back to defaults or failed coercion.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	ex, _ := extract.New(schema, extract.WithLogger(log.NewSlogAdapter(slog.Default())))
//
//	// For production: write to binary file
//	fl, _ := log.NewFileLogger("/var/log/fieldnorm/run.flog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # Event Categories
//
//   - Extracted: the field was found and coerced
//   - Defaulted: the field was missing and the schema default was used
//   - Failed: coercion of the field value failed
//
// # File Format
//
// Log files are a sequence of CBOR-encoded events with integer keys, by
// convention using the .flog extension. The fieldnorm CLI "events" command
// prints them.
package log
