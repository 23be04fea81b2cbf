package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/forta-toolkit/fieldnorm-go/pkg/log"
)

// EventOptions configures the events command.
type EventOptions struct {
	RunID    string
	Field    string
	Category string
}

// RunEvents prints the events of a .flog file, one line per event.
func RunEvents(path string, opts EventOptions, w io.Writer) error {
	filter := log.Filter{RunID: opts.RunID, Field: opts.Field}
	if opts.Category != "" {
		c, err := log.ParseCategory(opts.Category)
		if err != nil {
			return err
		}
		filter.Category = &c
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
}

func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [run:%s] #%d %-9s %s", ts, shortenRunID(event.RunID), event.Record, event.Category, event.Field)
	if event.Path != "" {
		fmt.Fprintf(w, " (%s)", event.Path)
	}
	if event.Category == log.CategoryFailed {
		fmt.Fprintf(w, " error=%q\n", event.Error)
		return
	}
	fmt.Fprintf(w, " = %s\n", FormatValue(event.Value))
}

func shortenRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
