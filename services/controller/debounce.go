package controller

import (
	"time"

	"productdisplay-go/types"
)

// DefaultDebounce is the software debounce window, layered on top of the
// input backend's raw hardware debounce.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer suppresses repeat edges per logical button. Each button has its
// own record, so one button's press never masks another's.
type Debouncer struct {
	window time.Duration
	last   map[types.Button]time.Time
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{
		window: window,
		last:   make(map[types.Button]time.Time),
	}
}

// Accept reports whether the edge at now should be acted on, recording now
// on acceptance. The first-ever edge for a button is always accepted.
func (d *Debouncer) Accept(b types.Button, now time.Time) bool {
	prev, seen := d.last[b]
	if seen && now.Sub(prev) < d.window {
		return false
	}
	d.last[b] = now
	return true
}
