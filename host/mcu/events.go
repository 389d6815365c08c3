package mcu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"digitalio/core"
)

// ErrMalformedEvent is returned for an event line with missing or bad fields
var ErrMalformedEvent = errors.New("malformed event line")

// Event is one event line reported by the firmware
type Event struct {
	Name      string // PRESS, BOUNCE, RELEASE, WRAP, WAIT_RANGE!
	Iteration uint32
	Count     uint8
	Value     uint32
}

// ParseEvent parses a line written by core.FormatEvent. ok is false for
// lines that are not events (banners, dump markers, other debug output).
func ParseEvent(line string) (evt Event, ok bool, err error) {
	line = strings.TrimRight(line, "\r\n")
	rest, found := strings.CutPrefix(line, core.EventPrefix)
	if !found || strings.HasPrefix(rest, "===") {
		return Event{}, false, nil
	}

	fields := strings.Fields(rest)
	if len(fields) != 4 {
		return Event{}, true, fmt.Errorf("%w: %q", ErrMalformedEvent, line)
	}
	evt.Name = fields[0]

	for _, f := range fields[1:] {
		key, val, found := strings.Cut(f, "=")
		if !found {
			return Event{}, true, fmt.Errorf("%w: %q", ErrMalformedEvent, line)
		}
		n, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return Event{}, true, fmt.Errorf("%w: %s: %v", ErrMalformedEvent, key, err)
		}
		switch key {
		case "iter":
			evt.Iteration = uint32(n)
		case "count":
			if n >= core.CounterLimit {
				return Event{}, true, fmt.Errorf("%w: count %d out of range", ErrMalformedEvent, n)
			}
			evt.Count = uint8(n)
		case "v":
			evt.Value = uint32(n)
		default:
			return Event{}, true, fmt.Errorf("%w: unknown field %q", ErrMalformedEvent, key)
		}
	}
	return evt, true, nil
}
