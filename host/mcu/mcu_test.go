package mcu

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digitalio/core"
)

func TestParseEvent(t *testing.T) {
	line := core.FormatEvent(core.Event{Kind: core.EvtPressConfirmed, Count: 42, Iteration: 1234, Value: 0})

	evt, ok, err := ParseEvent(line + "\r\n")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Event{Name: "PRESS", Iteration: 1234, Count: 42}, evt)
}

func TestParseEventIgnoresOtherLines(t *testing.T) {
	for _, line := range []string{
		"=== digitalio debug UART ===",
		"[EVT] === Event Ring Dump ===",
		"step: sim: pin is not an output",
		"",
	} {
		_, ok, err := ParseEvent(line)
		assert.NoError(t, err, line)
		assert.False(t, ok, line)
	}
}

func TestParseEventRejectsMalformed(t *testing.T) {
	for _, line := range []string{
		"[EVT] PRESS iter=1 count=1",
		"[EVT] PRESS iter=x count=1 v=0",
		"[EVT] PRESS iter=1 count=100 v=0",
		"[EVT] PRESS iter=1 cnt=1 v=0",
		"[EVT] PRESS iter=1 count1 v=0",
	} {
		_, ok, err := ParseEvent(line)
		assert.True(t, ok, line)
		assert.ErrorIs(t, err, ErrMalformedEvent, line)
	}
}

func TestFollowTracksCount(t *testing.T) {
	stream := strings.Join([]string{
		"=== digitalio debug UART ===",
		"[EVT] PRESS iter=3 count=1 v=0",
		"[EVT] RELEASE iter=9 count=1 v=0",
		"[EVT] PRESS iter=40 count=2 v=0",
		"[EVT] PRESS iter=x count=2 v=0",
		"[EVT] BOUNCE iter=52 count=2 v=0",
	}, "\r\n")

	m := NewMCU(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Attach(io.NopCloser(strings.NewReader(stream)))

	var names []string
	err := m.Follow(context.Background(), func(e Event) { names = append(names, e.Name) })
	require.NoError(t, err)

	assert.Equal(t, []string{"PRESS", "RELEASE", "PRESS", "BOUNCE"}, names)
	count, ok := m.Count()
	assert.True(t, ok)
	assert.Equal(t, uint8(2), count)
	assert.Equal(t, 4, m.Events())
	assert.Equal(t, 1, m.Faults())
	assert.NoError(t, m.Close())
}

func TestFollowStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMCU(nil)
	m.Attach(io.NopCloser(strings.NewReader("")))
	assert.ErrorIs(t, m.Follow(ctx, nil), context.Canceled)
}

func TestFollowRequiresConnection(t *testing.T) {
	assert.Error(t, NewMCU(nil).Follow(context.Background(), nil))
}

type readResult struct {
	data string
	err  error
}

// scriptedPort replays read results the way a serial port with a read
// timeout does, then times out forever
type scriptedPort struct {
	reads []readResult
	polls int
}

func (p *scriptedPort) Read(b []byte) (int, error) {
	p.polls++
	if len(p.reads) == 0 {
		return 0, io.EOF
	}
	r := p.reads[0]
	p.reads = p.reads[1:]
	return copy(b, r.data), r.err
}

func (p *scriptedPort) Write(b []byte) (int, error) { return len(b), nil }
func (p *scriptedPort) Close() error                { return nil }
func (p *scriptedPort) Flush() error                { return nil }

// plainReader is a scripted stream that is not a serial port
type plainReader struct{ src *scriptedPort }

func (r plainReader) Read(b []byte) (int, error) { return r.src.Read(b) }
func (r plainReader) Close() error               { return nil }

func TestFollowWaitsThroughPortTimeouts(t *testing.T) {
	port := &scriptedPort{reads: []readResult{
		{"", io.EOF},
		{"", nil},
		{"[EVT] PRE", nil},
		{"", io.EOF},
		{"SS iter=1 count=1 v=0\r\n", nil},
	}}

	m := NewMCU(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Attach(port)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var got []Event
	err := m.Follow(ctx, func(e Event) {
		got = append(got, e)
		cancel()
	})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, got, 1)
	assert.Equal(t, Event{Name: "PRESS", Iteration: 1, Count: 1}, got[0])
	assert.Equal(t, 5, port.polls)
}

func TestFollowKeepsPollingIdlePort(t *testing.T) {
	port := &scriptedPort{}

	m := NewMCU(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Attach(port)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := m.Follow(ctx, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Greater(t, port.polls, 1, "EOF from a port is a timeout, not the end")
	_, ok := m.Count()
	assert.False(t, ok)
}

func TestFollowPlainStreamEndsAtEOF(t *testing.T) {
	src := &scriptedPort{reads: []readResult{
		{"", nil},
		{"[EVT] BOUNCE iter=7 count=0 v=0", nil},
	}}
	r := plainReader{src: src}

	m := NewMCU(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Attach(r)

	var names []string
	require.NoError(t, m.Follow(context.Background(), func(e Event) { names = append(names, e.Name) }))
	assert.Equal(t, []string{"BOUNCE"}, names, "unterminated last line is still handled")
	assert.Equal(t, 3, src.polls)
}
