package log

import (
	"fmt"
	"strings"
	"time"
)

// Event records the outcome of resolving one schema field on one record.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID identifies the extraction run (UUID).
	RunID string `cbor:"2,keyasint"`

	// Schema is the name of the extraction schema.
	Schema string `cbor:"3,keyasint,omitempty"`

	// Record is the zero-based index of the record within the run.
	Record int `cbor:"4,keyasint"`

	// Category classifies the outcome.
	Category Category `cbor:"5,keyasint"`

	// Field is the schema field name.
	Field string `cbor:"6,keyasint"`

	// Path is the field path that was resolved.
	Path string `cbor:"7,keyasint,omitempty"`

	// Type is the coercion applied (hex, int, ...).
	Type string `cbor:"8,keyasint,omitempty"`

	// Value is the normalized value, or the default used.
	Value any `cbor:"9,keyasint,omitempty"`

	// Error is the coercion error message for failed events.
	Error string `cbor:"10,keyasint,omitempty"`
}

// Category classifies extraction outcomes.
type Category uint8

const (
	// CategoryExtracted indicates the field was found and coerced.
	CategoryExtracted Category = 0
	// CategoryDefaulted indicates the field was missing and defaulted.
	CategoryDefaulted Category = 1
	// CategoryFailed indicates coercion failed.
	CategoryFailed Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryExtracted:
		return "EXTRACTED"
	case CategoryDefaulted:
		return "DEFAULTED"
	case CategoryFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "extracted":
		return CategoryExtracted, nil
	case "defaulted":
		return CategoryDefaulted, nil
	case "failed":
		return CategoryFailed, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (use extracted, defaulted, or failed)", s)
	}
}
