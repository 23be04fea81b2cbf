package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{
		Timestamp: time.Now(),
		RunID:     "run-1",
		Category:  CategoryExtracted,
		Field:     "to",
		Value:     "ab",
	}
	logger.Log(event)

	event.Category = CategoryFailed
	event.Error = "unsupported value type"
	logger.Log(event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}
