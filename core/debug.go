package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a state machine or timer event for post-mortem analysis
type Event struct {
	Kind      uint8  // Event kind (Evt*)
	Count     uint8  // Counter value after the event
	Iteration uint32 // Loop iteration the event happened in
	Value     uint32 // Kind-dependent value
}

// Event kinds
const (
	EvtPressConfirmed = 1 // Released -> Pressed, counter incremented
	EvtPressRejected  = 2 // Low level did not survive the settle interval
	EvtReleased       = 3 // Pressed -> Released
	EvtCounterWrap    = 4 // Counter wrapped 99 -> 0
	EvtWaitRange      = 5 // Wait called outside [1, MaxWaitTicks], Value = ticks
)

// EventPrefix starts every event line written to the debug writer
const EventPrefix = "[EVT] "

const (
	EventRingSize = 32 // Keep last 32 events
)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether debug output is active
	debugEnabled bool

	eventRing      [EventRingSize]Event
	eventRingHead  uint8
	eventIteration uint32
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output.
// Events are always captured in the ring; this only gates the writer.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}

// setEventIteration stamps subsequent events with the loop iteration
func setEventIteration(n uint32) {
	eventIteration = n
}

// RecordEvent captures an event in the ring buffer and, when debug output
// is enabled, writes it as an event line.
func RecordEvent(kind, count uint8, value uint32) {
	evt := Event{
		Kind:      kind,
		Count:     count,
		Iteration: eventIteration,
		Value:     value,
	}
	eventRing[eventRingHead] = evt
	eventRingHead = (eventRingHead + 1) % EventRingSize

	if debugEnabled {
		debugPrintln(FormatEvent(evt))
	}
}

// EventName returns the wire name of an event kind
func EventName(kind uint8) string {
	switch kind {
	case EvtPressConfirmed:
		return "PRESS"
	case EvtPressRejected:
		return "BOUNCE"
	case EvtReleased:
		return "RELEASE"
	case EvtCounterWrap:
		return "WRAP"
	case EvtWaitRange:
		return "WAIT_RANGE!"
	default:
		return "UNKNOWN"
	}
}

// FormatEvent renders an event as a single debug line
func FormatEvent(evt Event) string {
	return EventPrefix + EventName(evt.Kind) +
		" iter=" + utoa(evt.Iteration) +
		" count=" + utoa(uint32(evt.Count)) +
		" v=" + utoa(evt.Value)
}

// Events returns the captured events, oldest first
func Events() []Event {
	out := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.Kind == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// DumpEvents writes the event ring through the debug writer regardless of
// the enabled flag. Call it from a fault path.
func DumpEvents() {
	debugPrintln("[EVT] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln(FormatEvent(evt))
	}
	debugPrintln("[EVT] === End Dump ===")
}

// ClearEvents clears the event buffer
func ClearEvents() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
	eventIteration = 0
}
