// Command product-display drives a product-name carousel with an
// elapsed-time stopwatch on a 16x2 character display, navigated with three
// buttons (or their keyboard stand-ins in the console simulation).
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"productdisplay-go/bus"
	"productdisplay-go/services/catalog"
	"productdisplay-go/services/clock"
	"productdisplay-go/services/config"
	"productdisplay-go/services/controller"
	"productdisplay-go/services/hal"
	"productdisplay-go/services/obs"
	"productdisplay-go/services/sim"
	"productdisplay-go/types"
)

// simLogPath receives logs when the console simulation owns the terminal.
const simLogPath = "product-display.log"

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	log := obs.Setup(os.Stderr, slog.LevelInfo)

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		return err
	}

	products := catalog.Load(cfg.ProductsFile, log)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	backend := cfg.Backend
	var (
		display types.Display
		buttons types.ButtonSource
		closer  io.Closer
	)
	switch backend {
	case types.BackendLCD, types.BackendAuto:
		h, err := hal.Open(cfg, log)
		if err != nil {
			if backend == types.BackendLCD {
				return err
			}
			log.Warn("hardware unavailable, using console simulation", "err", err)
			backend = types.BackendConsole
		} else {
			backend = types.BackendLCD
			display, buttons, closer = h.Display, h.Buttons, h
		}
	case types.BackendConsole:
	default:
		log.Warn("unknown backend, using console simulation", "backend", backend)
		backend = types.BackendConsole
	}
	if backend == types.BackendConsole {
		log = obs.Setup(simLogWriter(log), slog.LevelInfo)
		s := sim.New(cancel, log)
		display, buttons, closer = s, s, s
	}
	defer closer.Close()

	b := bus.NewBus(16)
	config.Publish(b.NewConnection("config"), cfg)

	clk := &clock.Service{Interval: cfg.Tick(), Log: log}
	clk.Start(ctx, b.NewConnection("clock"))

	ctrl, err := controller.New(controller.Options{
		Products: products,
		Display:  display,
		Buttons:  buttons,
		Conn:     b.NewConnection("controller"),
		Log:      log,
		Debounce: cfg.Debounce(),
		Loading:  cfg.Loading(),
	})
	if err != nil {
		return err
	}

	log.Info("product display running", "backend", backend, "products", len(products))
	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("stopped")
	return nil
}

// simLogWriter redirects logs to a file while the simulation UI owns the
// terminal; falls back to stderr if the file cannot be opened.
func simLogWriter(log *slog.Logger) io.Writer {
	f, err := os.OpenFile(simLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Warn("could not open log file, logging to stderr", "path", simLogPath, "err", err)
		return os.Stderr
	}
	return f
}
