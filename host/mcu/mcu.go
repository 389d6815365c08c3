package mcu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"digitalio/host/serial"
)

// MCU follows the debug UART of a board running the counter firmware
type MCU struct {
	// Serial port
	port io.ReadCloser

	logger *slog.Logger

	// Last reported state
	count    uint8
	hasCount bool
	events   int
	faults   int

	// Connection state
	connected bool
	live      bool // A serial port never ends; EOF there is a read timeout
}

// NewMCU creates a new MCU instance (not yet connected)
func NewMCU(logger *slog.Logger) *MCU {
	if logger == nil {
		logger = slog.Default()
	}
	return &MCU{logger: logger}
}

// ConnectWithConfig connects to a board with a custom serial config
func (m *MCU) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	if err := port.Flush(); err != nil {
		port.Close()
		return fmt.Errorf("failed to flush serial port: %w", err)
	}
	m.Attach(port)
	return nil
}

// Attach follows an already open stream. A serial.Port is followed until
// ctx is cancelled; any other reader ends at io.EOF.
func (m *MCU) Attach(r io.ReadCloser) {
	_, live := r.(serial.Port)
	m.port = r
	m.live = live
	m.connected = true
}

// Close closes the connection to the board
func (m *MCU) Close() error {
	if !m.connected {
		return nil
	}
	m.connected = false
	return m.port.Close()
}

// Count returns the last counter value the board reported
func (m *MCU) Count() (uint8, bool) {
	return m.count, m.hasCount
}

// Events returns the number of event lines seen
func (m *MCU) Events() int {
	return m.events
}

// Faults returns the number of malformed event lines seen
func (m *MCU) Faults() int {
	return m.faults
}

// Follow reads lines until the stream ends or ctx is cancelled, calling
// handle for each parsed event. Non-event lines are logged at debug level.
func (m *MCU) Follow(ctx context.Context, handle func(Event)) error {
	if !m.connected {
		return errors.New("not connected")
	}

	var line bytes.Buffer
	buf := make([]byte, 256)
	idle := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := m.port.Read(buf)
		for _, b := range buf[:n] {
			if b != '\n' {
				line.WriteByte(b)
				continue
			}
			m.handleLine(line.String(), handle)
			line.Reset()
		}

		if m.live && errors.Is(err, io.EOF) {
			err = nil
		}

		switch {
		case errors.Is(err, io.EOF):
			if line.Len() > 0 {
				m.handleLine(line.String(), handle)
			}
			return nil
		case err != nil:
			return fmt.Errorf("read: %w", err)
		case n == 0:
			// Read timeout with nothing received
			idle++
			if idle%50 == 0 {
				m.logger.Debug("No data from board", "idle", time.Duration(idle)*100*time.Millisecond)
			}
		default:
			idle = 0
		}
	}
}

func (m *MCU) handleLine(s string, handle func(Event)) {
	s = strings.TrimRight(s, "\r")
	if s == "" {
		return
	}
	evt, ok, err := ParseEvent(s)
	if err != nil {
		m.faults++
		m.logger.Warn("Bad event line", "error", err)
		return
	}
	if !ok {
		m.logger.Debug("Board", "line", s)
		return
	}

	m.events++
	m.count = evt.Count
	m.hasCount = true
	m.logger.Info("Event", "name", evt.Name, "iter", evt.Iteration, "count", evt.Count, "v", evt.Value)
	if handle != nil {
		handle(evt)
	}
}
