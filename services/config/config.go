package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"productdisplay-go/bus"
	"productdisplay-go/errcode"
	"productdisplay-go/types"
)

// DefaultPath is the optional override file, looked up in the working
// directory.
const DefaultPath = "product-display.json"

var topicPrefix = "config"

// Default returns the embedded configuration.
func Default() types.Config {
	var cfg types.Config
	// The embedded document is a compile-time constant; a parse failure is a
	// programming error.
	if err := json.Unmarshal([]byte(defaultJSON), &cfg); err != nil {
		panic("config: bad embedded defaults: " + err.Error())
	}
	return cfg
}

// Load returns the embedded defaults overlaid with the JSON file at path.
// A missing file is not an error; a malformed one is.
func Load(path string) (types.Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, &errcode.E{C: errcode.LoadFailed, Op: "config.Load", Err: err}
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, &errcode.E{C: errcode.InvalidPayload, Op: "config.Load", Err: err}
	}
	return cfg, nil
}

// Publish emits the per-service configuration documents as retained
// messages, so services started later still observe them.
func Publish(conn *bus.Connection, cfg types.Config) {
	conn.Publish(conn.NewMessage(bus.T(topicPrefix, "clock"),
		map[string]any{"interval_ms": cfg.TickMs}, true))
	conn.Publish(conn.NewMessage(bus.T(topicPrefix, "controller"),
		map[string]any{"debounce_ms": cfg.DebounceMs, "loading_ms": cfg.LoadingMs}, true))
	conn.Publish(conn.NewMessage(bus.T(topicPrefix, "hal"),
		map[string]any{
			"i2c_bus":        cfg.I2CBus,
			"i2c_addr":       int(cfg.I2CAddr),
			"pins":           []int{cfg.Pins.Up, cfg.Pins.Down, cfg.Pins.Timer},
			"hw_debounce_ms": cfg.HWDebounceMs,
		}, true))
}
