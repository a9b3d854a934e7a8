package types

import "time"

// Backend selects the display/input implementation at startup.
// "auto" tries the LCD and falls back to the console simulation.
const (
	BackendAuto    = "auto"
	BackendLCD     = "lcd"
	BackendConsole = "console"
)

// Config holds every load-time constant of the application.
// No environment variables are consumed; values come from the embedded
// defaults, optionally overridden by a local JSON file.
type Config struct {
	Backend string `json:"backend"`

	I2CBus  string `json:"i2c_bus"`  // "" = first available bus
	I2CAddr uint8  `json:"i2c_addr"` // typically 0x27 or 0x3F

	Pins PinConfig `json:"pins"`

	DebounceMs   int `json:"debounce_ms"`    // software debounce window
	HWDebounceMs int `json:"hw_debounce_ms"` // raw edge-layer debounce hint
	TickMs       int `json:"tick_ms"`        // display refresh tick
	LoadingMs    int `json:"loading_ms"`     // loading screen duration

	ProductsFile string `json:"products_file"`
}

// PinConfig maps logical buttons to BCM pin numbers.
type PinConfig struct {
	Up    int `json:"up"`
	Down  int `json:"down"`
	Timer int `json:"timer"`
}

func (c Config) Debounce() time.Duration   { return time.Duration(c.DebounceMs) * time.Millisecond }
func (c Config) HWDebounce() time.Duration { return time.Duration(c.HWDebounceMs) * time.Millisecond }
func (c Config) Tick() time.Duration       { return time.Duration(c.TickMs) * time.Millisecond }
func (c Config) Loading() time.Duration    { return time.Duration(c.LoadingMs) * time.Millisecond }
