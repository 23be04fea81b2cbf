// Command fieldnorm extracts and normalizes fields from JSON, YAML and CBOR
// records.
//
// Usage:
//
//	fieldnorm <command> [flags] <args>
//
// Commands:
//
//	get      Print one field of every record
//	extract  Apply an extraction schema to records
//	events   View an extraction event log
//	shell    Explore records interactively
//	schemas  List the builtin extraction schemas
//
// Examples:
//
//	# Print the recipient of every transaction as hex
//	fieldnorm get -as hex tx.to txs.jsonl
//
//	# Extract with a schema, keeping an event log
//	fieldnorm extract -events run.flog transfer.yaml logs.cbor
//
//	# Use an embedded schema
//	fieldnorm extract builtin:erc20-transfer logs.jsonl
//
//	# Show only failed fields
//	fieldnorm events -category failed run.flog
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/forta-toolkit/fieldnorm-go/cmd/fieldnorm/commands"
	"github.com/forta-toolkit/fieldnorm-go/pkg/record"
)

const usage = `fieldnorm - record field extraction and normalization

Usage:
  fieldnorm <command> [flags] <args>

Commands:
  get      Print one field of every record
  extract  Apply an extraction schema to records
  events   View an extraction event log
  shell    Explore records interactively
  schemas  List the builtin extraction schemas

Use "fieldnorm <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "get":
		runGet(args)
	case "extract":
		runExtract(args)
	case "events":
		runEvents(args)
	case "shell":
		runShell(args)
	case "schemas":
		runSchemas()
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runGet(args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `fieldnorm get - Print one field of every record

Usage:
  fieldnorm get [flags] <path> <record-file>...

Flags:
`)
		fs.PrintDefaults()
	}

	as := fs.String("as", "raw", "Coercion (raw, hex, bytes, int, uint64, keccak256)")
	def := fs.String("default", "", "Value used when the field is missing (default: null)")
	debug := fs.Bool("debug", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: path and at least one record file required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.GetOptions{
		Path:  fs.Arg(0),
		As:    *as,
		Files: fs.Args()[1:],
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "default" {
			opts.Default = *def
		}
	})

	if err := commands.RunGet(opts, os.Stdout, newLogger(*debug)); err != nil {
		fail(err)
	}
}

func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `fieldnorm extract - Apply an extraction schema to records

Usage:
  fieldnorm extract [flags] <schema.yaml|builtin:name> <record-file>...

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "json", "Output format (json, yaml, cbor)")
	output := fs.String("o", "", "Output file (default: stdout)")
	events := fs.String("events", "", "Append extraction events to this .flog file")
	runID := fs.String("run-id", "", "Run identifier (default: random UUID)")
	debug := fs.Bool("debug", false, "Enable debug logging (includes every field event)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: schema and at least one record file required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.ExtractOptions{
		Schema: fs.Arg(0),
		Files:  fs.Args()[1:],
		Format: *format,
		Output: *output,
		Events: *events,
		RunID:  *runID,
	}
	if err := commands.RunExtract(opts, os.Stdout, newLogger(*debug)); err != nil {
		fail(err)
	}
}

func runEvents(args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `fieldnorm events - View an extraction event log

Usage:
  fieldnorm events [flags] <file.flog>

Flags:
`)
		fs.PrintDefaults()
	}

	runID := fs.String("run-id", "", "Filter by run ID")
	field := fs.String("field", "", "Filter by field name")
	category := fs.String("category", "", "Filter by category (extracted, defaulted, failed)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: event log path required")
		fs.Usage()
		os.Exit(1)
	}

	opts := commands.EventOptions{RunID: *runID, Field: *field, Category: *category}
	if err := commands.RunEvents(fs.Arg(0), opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runShell(args []string) {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `fieldnorm shell - Explore records interactively

Usage:
  fieldnorm shell [flags] <record-file>

Flags:
`)
		fs.PrintDefaults()
	}

	debug := fs.Bool("debug", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one record file required")
		fs.Usage()
		os.Exit(1)
	}

	logger := newLogger(*debug)
	records, format, err := record.DecodeFile(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	logger.Debug("decoded records", "file", fs.Arg(0), "format", format.String(), "count", len(records))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := commands.NewShell(records, os.Stdout).Run(ctx); err != nil {
		fail(err)
	}
}

func runSchemas() {
	if err := commands.RunSchemas(os.Stdout); err != nil {
		fail(err)
	}
}
