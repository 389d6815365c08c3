// Package termsim draws the simulated board in a terminal with tcell and
// feeds the space bar into the button input.
package termsim

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"digitalio/core"
	"digitalio/sim"
)

const (
	// Terminals send no key-up events; the button is let go once key
	// repeat stops for this long.
	keyTimeout = 150 * time.Millisecond
	frameTime  = time.Second / 30

	digitWidth = 4
	panelX     = 2
	panelY     = 2
)

var (
	styleBase = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleLit  = styleBase.Foreground(tcell.ColorRed).Bold(true)
	styleDim  = styleBase.Foreground(tcell.ColorGray)
)

// RenderDigit draws a segment pattern as three rows of text, dp in the
// fourth column of the last row.
func RenderDigit(pattern uint8) [3]string {
	seg := func(bit uint, on rune) rune {
		if pattern&(1<<bit) != 0 {
			return on
		}
		return ' '
	}
	return [3]string{
		string([]rune{' ', seg(0, '_'), ' ', ' '}),
		string([]rune{seg(5, '|'), seg(6, '_'), seg(1, '|'), ' '}),
		string([]rune{seg(4, '|'), seg(3, '_'), seg(2, '|'), seg(7, '.')}),
	}
}

// Frontend renders a sim.Board and turns key presses into button levels
type Frontend struct {
	screen tcell.Screen
	board  *sim.Board

	lastSpace time.Time
	down      bool
	passes    atomic.Uint64
}

// New creates a frontend on an initialized screen
func New(screen tcell.Screen, board *sim.Board) *Frontend {
	return &Frontend{screen: screen, board: board}
}

// ButtonDown reports whether the frontend is holding the button
func (f *Frontend) ButtonDown() bool {
	return f.down
}

// HandleEvent processes one terminal event and reports whether to quit
func (f *Frontend) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			f.lastSpace = now
			if !f.down {
				slog.Debug("Button down")
				f.down = true
				f.board.SetButton(true)
			}
		}
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return false
}

// Tick lets the button go once the key has not repeated for keyTimeout
func (f *Frontend) Tick(now time.Time) {
	if f.down && now.Sub(f.lastSpace) >= keyTimeout {
		slog.Debug("Button up")
		f.down = false
		f.board.SetButton(false)
	}
}

// Draw renders the panel, heartbeat LED and status lines
func (f *Frontend) Draw() {
	f.screen.SetStyle(styleBase)
	f.screen.Clear()

	f.drawText(0, 0, styleBase, "digitalio - two digit counter")

	for i, pos := range []core.DigitSelect{core.Tens, core.Ones} {
		rows := RenderDigit(f.board.Panel.Digit(pos))
		for y, row := range rows {
			f.drawText(panelX+i*digitWidth, panelY+y, styleLit, row)
		}
	}

	led, style := 'o', styleDim
	if f.board.Panel.Heartbeat() {
		led, style = '*', styleLit
	}
	f.screen.SetContent(panelX+2*digitWidth+2, panelY+1, led, nil, style)

	state := "up"
	if f.down {
		state = "DOWN"
	}
	f.drawText(0, panelY+4, styleBase, fmt.Sprintf("button %-4s  passes %d", state, f.passes.Load()))
	f.drawText(0, panelY+5, styleDim, "space: press   q: quit")
	f.screen.Show()
}

func (f *Frontend) drawText(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		f.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Run drives the controller in its own goroutine and redraws until the
// user quits or ctx is done.
func (f *Frontend) Run(ctx context.Context) error {
	var stop atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.board.Ctrl.RunUntil(func() bool {
			f.passes.Add(1)
			return stop.Load()
		})
	}()
	defer func() {
		stop.Store(true)
		<-done
	}()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for {
		for f.screen.HasPendingEvent() {
			if f.HandleEvent(f.screen.PollEvent(), time.Now()) {
				return nil
			}
		}
		f.Tick(time.Now())
		f.Draw()

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
