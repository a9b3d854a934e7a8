// Package catalog loads the ordered product list shown on line 0.
package catalog

import (
	"bufio"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// Defaults returns the built-in product list used when no file is present.
func Defaults() []string {
	return []string{
		"Apple iPhone 15",
		"Samsung Galaxy S24",
		"Google Pixel 8",
		"iPad Pro 12.9",
		"MacBook Air M2",
		"Dell XPS 13",
		"Sony WH-1000XM5",
		"AirPods Pro 2",
		"Nintendo Switch",
		"Tesla Model Y",
		"Raspberry Pi 5",
		"Arduino Uno R4",
	}
}

// Load reads one product name per line from path, skipping blank lines.
// Every failure mode recovers to the default list; the result is never
// empty. When the file does not exist, the defaults are written back
// (best-effort) so the operator has a template to edit.
func Load(path string, log *slog.Logger) []string {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("products file missing, using defaults", "path", path)
			writeBack(path, Defaults(), log)
		} else {
			log.Warn("products file unreadable, using defaults", "path", path, "err", err)
		}
		return Defaults()
	}
	defer f.Close()

	var products []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		products = append(products, name)
	}
	if err := sc.Err(); err != nil {
		log.Warn("products file read failed, using defaults", "path", path, "err", err)
		return Defaults()
	}
	if len(products) == 0 {
		log.Warn("products file empty, using defaults", "path", path)
		return Defaults()
	}
	log.Info("products loaded", "path", path, "count", len(products))
	return products
}

func writeBack(path string, products []string, log *slog.Logger) {
	var b strings.Builder
	for _, p := range products {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		log.Warn("could not write default products file", "path", path, "err", err)
	}
}
