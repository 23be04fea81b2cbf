package extract

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forta-toolkit/fieldnorm-go/pkg/log"
	"github.com/forta-toolkit/fieldnorm-go/pkg/normalize"
)

// Extraction errors.
var (
	ErrNilSchema     = errors.New("schema is nil")
	ErrRequiredField = errors.New("required field")
)

// missingValue marks a path that did not resolve. GetField threads it as
// the dataset for the remaining segments, where every lookup misses again.
type missingValue struct{ _ byte }

var missing = &missingValue{}

// Extractor applies a Schema to records.
// It is immutable after New and safe for concurrent use.
type Extractor struct {
	schema *Schema
	logger log.Logger
	runID  string
	now    func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the event logger. Defaults to log.NoopLogger.
func WithLogger(l log.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRunID sets the run identifier stamped on events. Defaults to a new UUID.
func WithRunID(id string) Option {
	return func(e *Extractor) {
		if id != "" {
			e.runID = id
		}
	}
}

// withClock overrides the event timestamp source (tests only).
func withClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// New validates schema and returns an Extractor for it.
func New(schema *Schema, opts ...Option) (*Extractor, error) {
	if schema == nil {
		return nil, ErrNilSchema
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	e := &Extractor{
		schema: schema,
		logger: log.NoopLogger{},
		runID:  uuid.New().String(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// RunID returns the identifier stamped on this extractor's events.
func (e *Extractor) RunID() string {
	return e.runID
}

// Schema returns the schema the extractor applies.
func (e *Extractor) Schema() *Schema {
	return e.schema
}

// Extract resolves every schema field on a single record.
func (e *Extractor) Extract(record any) (Result, error) {
	return e.extract(0, record)
}

// ExtractAll resolves every record in order. It stops at the first record
// with a failing required field; results for earlier records are returned.
func (e *Extractor) ExtractAll(records []any) ([]Result, error) {
	results := make([]Result, 0, len(records))
	for i, rec := range records {
		r, err := e.extract(i, rec)
		if err != nil {
			return results, fmt.Errorf("record %d: %w", i, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (e *Extractor) extract(index int, record any) (Result, error) {
	res := Result{Fields: make([]Field, 0, len(e.schema.Fields))}

	for _, spec := range e.schema.Fields {
		raw := normalize.GetField(record, spec.Path, missing, nil)
		event := log.Event{
			Timestamp: e.now(),
			RunID:     e.runID,
			Schema:    e.schema.Name,
			Record:    index,
			Field:     spec.Name,
			Path:      spec.Path.String(),
			Type:      string(spec.Type),
		}

		if raw == missing {
			if spec.Required {
				event.Category = log.CategoryFailed
				event.Error = "missing"
				e.logger.Log(event)
				return Result{}, fmt.Errorf("%w %q missing at %s", ErrRequiredField, spec.Name, event.Path)
			}
			value := e.coerceDefault(spec)
			event.Category = log.CategoryDefaulted
			event.Value = value
			e.logger.Log(event)
			res.Fields = append(res.Fields, Field{Name: spec.Name, Value: value, Defaulted: true})
			continue
		}

		value, err := Coerce(raw, spec.Type, spec.Prefix)
		if err != nil {
			event.Category = log.CategoryFailed
			event.Error = err.Error()
			e.logger.Log(event)
			if spec.Required {
				return Result{}, fmt.Errorf("%w %q: %w", ErrRequiredField, spec.Name, err)
			}
			res.Fields = append(res.Fields, Field{Name: spec.Name, Value: e.coerceDefault(spec), Defaulted: true})
			continue
		}

		event.Category = log.CategoryExtracted
		event.Value = value
		e.logger.Log(event)
		res.Fields = append(res.Fields, Field{Name: spec.Name, Value: value})
	}
	return res, nil
}

// coerceDefault coerces the field default like a found value. A default that
// cannot be coerced is used as written.
func (e *Extractor) coerceDefault(spec FieldSpec) any {
	if spec.Default == nil {
		return nil
	}
	v, err := Coerce(spec.Default, spec.Type, spec.Prefix)
	if err != nil {
		return spec.Default
	}
	return v
}
