package log

import (
	"fmt"
	"os"
	"sync"
)

// Counts tallies logged events by category.
type Counts struct {
	Extracted int
	Defaulted int
	Failed    int
}

// Total returns the number of counted events.
func (c Counts) Total() int {
	return c.Extracted + c.Defaulted + c.Failed
}

func (c *Counts) add(cat Category) {
	switch cat {
	case CategoryExtracted:
		c.Extracted++
	case CategoryDefaulted:
		c.Defaulted++
	case CategoryFailed:
		c.Failed++
	}
}

// FileLogger appends extraction events to a .flog file as a CBOR sequence.
// It is safe for concurrent use from multiple goroutines.
//
// Log never fails the caller. The first event that could not be written
// is remembered and reported by Close, and Dropped counts the rest.
type FileLogger struct {
	file    *os.File
	mu      sync.Mutex
	closed  bool
	counts  Counts
	dropped int
	err     error
}

// NewFileLogger creates a new FileLogger that writes to the specified path.
// If the file exists, new events are appended.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{file: f}, nil
}

// Log writes an event to the log file.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	data, err := EncodeEvent(event)
	if err == nil {
		_, err = l.file.Write(data)
	}
	if err != nil {
		l.dropped++
		if l.err == nil {
			l.err = fmt.Errorf("record %d field %q: %w", event.Record, event.Field, err)
		}
		return
	}
	l.counts.add(event.Category)
}

// Counts returns the events written so far, by category.
func (l *FileLogger) Counts() Counts {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts
}

// Dropped returns the number of events that could not be written.
func (l *FileLogger) Dropped() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

// Close closes the log file and reports the first write failure, if any.
// It is safe to call Close multiple times; later Log calls are ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}

	l.closed = true
	closeErr := l.file.Close()
	if l.err != nil {
		return fmt.Errorf("%d event(s) not written, first: %w", l.dropped, l.err)
	}
	return closeErr
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
