package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"digitalio/core"
	"digitalio/host/mcu"
	"digitalio/host/serial"
	"digitalio/host/termsim"
	"digitalio/sim"
)

func main() {
	app := cli.NewApp()
	app.Name = "digitalio-host"
	app.Usage = "Simulate or monitor the two-digit button counter"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		level := slog.LevelInfo
		if c.Bool("verbose") {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
		return nil
	}

	boardFlags := []cli.Flag{
		cli.UintFlag{
			Name:  "clock-hz",
			Usage: "Core clock the countdown timer runs from",
			Value: core.DefaultClockHz,
		},
		cli.UintFlag{
			Name:  "settle-ms",
			Usage: "Debounce settle interval in milliseconds",
			Value: core.DefaultSettleMS,
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "sim",
			Usage:  "Run the counter in real time on a terminal front panel",
			Flags:  boardFlags,
			Action: runSim,
		},
		{
			Name:  "run",
			Usage: "Feed scripted presses through the simulated board and print the result",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "presses",
					Usage: "Number of clean presses to simulate",
					Value: 1,
				},
				cli.IntFlag{
					Name:  "bounces",
					Usage: "Number of presses shorter than the settle interval to mix in",
				},
			}, boardFlags...),
			Action: runScripted,
		},
		{
			Name:  "monitor",
			Usage: "Follow the event log on a board's debug UART",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "device",
					Usage: "Serial device path",
					Value: "/dev/ttyUSB0",
				},
				cli.IntFlag{
					Name:  "baud",
					Usage: "Baud rate",
					Value: serial.DefaultBaud,
				},
			},
			Action: runMonitor,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running digitalio-host", "error", err)
		os.Exit(1)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSim(c *cli.Context) error {
	clockHz := uint32(c.Uint("clock-hz"))
	board, err := sim.NewBoardWith(sim.NewWallCountdown(clockHz), clockHz, uint32(c.Uint("settle-ms")))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	ctx, cancel := signalContext()
	defer cancel()
	return termsim.New(screen, board).Run(ctx)
}

func runScripted(c *cli.Context) error {
	presses := c.Int("presses")
	bounces := c.Int("bounces")
	if presses < 0 || bounces < 0 {
		return errors.New("presses and bounces must not be negative")
	}

	board, err := sim.NewBoard(uint32(c.Uint("clock-hz")), uint32(c.Uint("settle-ms")))
	if err != nil {
		return err
	}

	for i := 0; i < presses; i++ {
		if i < bounces {
			board.GPIO.Script(sim.DefaultPins.Button, false, true)
			if _, err := board.Ctrl.Step(); err != nil {
				return err
			}
		}
		if err := board.Press(); err != nil {
			return err
		}
	}
	// One more pass so both positions show the final value
	if _, err := board.Ctrl.Step(); err != nil {
		return err
	}

	st := board.Ctrl.State()
	tens, ones := board.Shown()
	elapsed := board.Countdown.(*sim.Countdown).Elapsed()
	slog.Info("Run complete",
		"presses", presses,
		"bounces", min(bounces, presses),
		"iterations", st.Iterations,
		"ticks", elapsed,
		"settle_ticks", board.Ctrl.SettleTicks())

	for _, evt := range core.Events() {
		slog.Debug("Event", "line", core.FormatEvent(evt))
	}
	fmt.Printf("counter=%s display=%d%d\n", st.Counter, tens, ones)
	return nil
}

func runMonitor(c *cli.Context) error {
	cfg := serial.DefaultConfig(c.String("device"))
	cfg.Baud = c.Int("baud")

	m := mcu.NewMCU(slog.Default())
	if err := m.ConnectWithConfig(cfg); err != nil {
		return err
	}
	defer m.Close()

	ctx, cancel := signalContext()
	defer cancel()

	slog.Info("Following board", "device", cfg.Device, "baud", cfg.Baud)
	err := m.Follow(ctx, func(evt mcu.Event) {
		if evt.Name == "WRAP" {
			slog.Info("Counter wrapped")
		}
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if count, ok := m.Count(); ok {
		slog.Info("Last reported count", "count", count, "events", m.Events(), "bad_lines", m.Faults())
	}
	return err
}
