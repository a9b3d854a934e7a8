package hal

import (
	"log/slog"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"

	"productdisplay-go/errcode"
	"productdisplay-go/types"
)

// DefaultAddr is the usual PCF8574 backpack address; 0x3F is the common
// alternate (configured via i2c_addr).
const DefaultAddr = 0x27

// CGRAM slots for the status glyphs. The HD44780 character ROM has no
// play/pause symbols, so the renderer's runes are mapped onto custom
// characters uploaded at init.
const (
	cgramPlay  = 0
	cgramPause = 1
)

// 5x8 pixel patterns, one byte per row.
var (
	playPattern  = []byte{0x10, 0x18, 0x1C, 0x1E, 0x1C, 0x18, 0x10, 0x00}
	pausePattern = []byte{0x1B, 0x1B, 0x1B, 0x1B, 0x1B, 0x1B, 0x1B, 0x00}
)

// LCD drives the character display. It owns truncation and space-padding to
// the 16-column width, so writers never worry about stale trailing cells.
type LCD struct {
	dev hd44780i2c.Device
	log *slog.Logger
}

// NewLCD configures the display at addr on the given I2C bus. A periph
// i2c.Bus satisfies the drivers.I2C Tx shape directly.
func NewLCD(bus drivers.I2C, addr uint8, log *slog.Logger) (*LCD, error) {
	if addr == 0 {
		addr = DefaultAddr
	}
	dev := hd44780i2c.New(bus, addr)
	err := dev.Configure(hd44780i2c.Config{
		Width:  types.DisplayCols,
		Height: types.DisplayRows,
	})
	if err != nil {
		return nil, &errcode.E{C: errcode.HardwareInit, Op: "hal.NewLCD", Msg: "configure", Err: err}
	}
	if err := dev.CreateCharacter(cgramPlay, playPattern); err != nil {
		return nil, &errcode.E{C: errcode.HardwareInit, Op: "hal.NewLCD", Msg: "cgram", Err: err}
	}
	if err := dev.CreateCharacter(cgramPause, pausePattern); err != nil {
		return nil, &errcode.E{C: errcode.HardwareInit, Op: "hal.NewLCD", Msg: "cgram", Err: err}
	}
	if err := dev.BacklightOn(true); err != nil {
		return nil, &errcode.E{C: errcode.HardwareInit, Op: "hal.NewLCD", Msg: "backlight", Err: err}
	}
	log.Info("lcd ready", "addr", addr)
	return &LCD{dev: dev, log: log}, nil
}

// WriteLine renders text into row, truncated or padded to the full width.
func (l *LCD) WriteLine(row int, text string) error {
	if row < 0 || row >= types.DisplayRows {
		return &errcode.E{C: errcode.InvalidParams, Op: "hal.WriteLine"}
	}
	if err := l.dev.SetCursor(0, uint8(row)); err != nil {
		return err
	}
	return l.dev.Print(cells(text))
}

func (l *LCD) Clear() error {
	return l.dev.ClearDisplay()
}

// Close blanks the display and switches the backlight off.
func (l *LCD) Close() error {
	if err := l.dev.ClearDisplay(); err != nil {
		return err
	}
	return l.dev.BacklightOn(false)
}

// cells maps text onto exactly DisplayCols HD44780 character codes:
// status glyphs onto their CGRAM slots, other non-ASCII onto '?', the rest
// space-padded.
func cells(text string) []byte {
	out := make([]byte, 0, types.DisplayCols)
	for _, r := range text {
		if len(out) == types.DisplayCols {
			break
		}
		switch {
		case r == '▶':
			out = append(out, cgramPlay)
		case r == '⏸':
			out = append(out, cgramPause)
		case r >= 0x20 && r < 0x7F:
			out = append(out, byte(r))
		default:
			out = append(out, '?')
		}
	}
	for len(out) < types.DisplayCols {
		out = append(out, ' ')
	}
	return out
}
