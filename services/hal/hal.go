// Package hal provides the hardware implementations of the display and
// button capabilities: an HD44780 16x2 character LCD behind a PCF8574 I2C
// backpack, and GPIO push buttons with pull-ups.
package hal

import (
	"log/slog"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"productdisplay-go/errcode"
	"productdisplay-go/types"
)

// HAL bundles the opened hardware capabilities. Close releases them in
// reverse order of acquisition.
type HAL struct {
	Display types.Display
	Buttons types.ButtonSource

	i2cBus i2c.BusCloser
	log    *slog.Logger
}

// Open initialises the host, the I2C bus, the LCD, and the button pins.
// Any failure here is a HardwareInit error; the caller treats it as fatal
// (or falls back to the console simulation when the backend is "auto").
func Open(cfg types.Config, log *slog.Logger) (*HAL, error) {
	if _, err := host.Init(); err != nil {
		return nil, &errcode.E{C: errcode.HardwareInit, Op: "hal.Open", Msg: "host init", Err: err}
	}

	busc, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return nil, &errcode.E{C: errcode.HardwareInit, Op: "hal.Open", Msg: "i2c open", Err: err}
	}

	lcd, err := NewLCD(busc, cfg.I2CAddr, log)
	if err != nil {
		_ = busc.Close()
		return nil, err
	}

	buttons, err := OpenButtons(cfg, log)
	if err != nil {
		_ = lcd.Close()
		_ = busc.Close()
		return nil, err
	}

	log.Info("hardware backend ready",
		"i2c_addr", cfg.I2CAddr,
		"pins", []int{cfg.Pins.Up, cfg.Pins.Down, cfg.Pins.Timer})
	return &HAL{
		Display: lcd,
		Buttons: buttons,
		i2cBus:  busc,
		log:     log,
	}, nil
}

// Close releases buttons, display, and the I2C bus. Best-effort: the first
// error is returned but every resource is still released.
func (h *HAL) Close() error {
	var first error
	if err := h.Buttons.Close(); err != nil && first == nil {
		first = err
	}
	if err := h.Display.Close(); err != nil && first == nil {
		first = err
	}
	if err := h.i2cBus.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
