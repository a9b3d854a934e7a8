package controller

import (
	"log/slog"
	"time"

	"productdisplay-go/types"
	"productdisplay-go/x/timex"
)

// Status glyphs for line 1. The LCD backend maps these onto CGRAM custom
// characters; the simulation shows them as-is.
const (
	GlyphRunning = "▶"
	GlyphStopped = "⏸"
)

// Renderer formats the two display lines and pushes them to the display
// collaborator. A per-row cache of the last written content suppresses
// redundant writes, so an unchanged tick costs no display I/O.
type Renderer struct {
	disp  types.Display
	log   *slog.Logger
	last  [types.DisplayRows]string
	valid [types.DisplayRows]bool
}

func NewRenderer(disp types.Display, log *slog.Logger) *Renderer {
	return &Renderer{disp: disp, log: log}
}

// Lines formats line 0 and line 1 from the current state. Truncation and
// padding to the column width is the display collaborator's job.
func Lines(nav *Nav, sw *Stopwatch, now time.Time) (string, string) {
	glyph := GlyphStopped
	if sw.Running() {
		glyph = GlyphRunning
	}
	return nav.Current(), glyph + timex.FormatMMSS(sw.Elapsed(now))
}

// Render writes any row whose content changed since the last write.
func (r *Renderer) Render(nav *Nav, sw *Stopwatch, now time.Time) {
	line0, line1 := Lines(nav, sw, now)
	r.writeRow(0, line0)
	r.writeRow(1, line1)
}

func (r *Renderer) writeRow(row int, text string) {
	if r.valid[row] && r.last[row] == text {
		return
	}
	if err := r.disp.WriteLine(row, text); err != nil {
		// Mark the row stale so it is retried on the next render.
		r.log.Warn("display write failed", "row", row, "err", err)
		r.valid[row] = false
		return
	}
	r.last[row] = text
	r.valid[row] = true
}

// Invalidate forgets the cache, forcing the next Render to rewrite both
// rows. Call after anything else wrote to the display (loading screen,
// Clear).
func (r *Renderer) Invalidate() { r.valid = [types.DisplayRows]bool{} }
