package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// ErrInvalidEvent is returned by EncodeEvent for events that cannot be
// attributed to a record field.
var ErrInvalidEvent = errors.New("invalid event")

// logEncMode is the CBOR encoder mode for log events.
// Timestamps keep nanosecond precision; integers wider than 64 bits are
// written as CBOR bignums.
var logEncMode cbor.EncMode

// logDecMode is the CBOR decoder mode for log events.
var logDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
		BigIntConvert: cbor.BigIntConvertShortest,
	}
	logEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create log CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
		BigIntDec:         cbor.BigIntDecodePointer,
	}
	logDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create log CBOR decoder mode: %v", err))
	}
}

// EncodeEvent encodes an Event to CBOR bytes.
//
// The event must name a field, a non-negative record index and a known
// category. A Value that has no CBOR form (raw fields may resolve to
// functions or channels) is recorded as its %v text so the event is kept.
func EncodeEvent(event Event) ([]byte, error) {
	switch {
	case event.Field == "":
		return nil, fmt.Errorf("%w: empty field name", ErrInvalidEvent)
	case event.Record < 0:
		return nil, fmt.Errorf("%w: record index %d", ErrInvalidEvent, event.Record)
	case event.Category > CategoryFailed:
		return nil, fmt.Errorf("%w: category %d", ErrInvalidEvent, event.Category)
	}

	data, err := logEncMode.Marshal(event)
	if err == nil || event.Value == nil {
		return data, err
	}
	event.Value = fmt.Sprintf("%v", event.Value)
	return logEncMode.Marshal(event)
}

// DecodeEvent decodes CBOR bytes into an Event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := logDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewDecoder creates a CBOR decoder for log events that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return logDecMode.NewDecoder(r)
}
