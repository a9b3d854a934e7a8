// Package sim is the console implementation of the display and button
// capabilities: a terminal UI drawing the 16x2 panel, with keyboard keys
// standing in for the physical buttons.
package sim

import (
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"productdisplay-go/errcode"
	"productdisplay-go/types"
)

const eventQueueLen = 16

// Sim implements both types.Display and types.ButtonSource over one
// terminal UI. Close shuts the UI down and closes the event channel.
type Sim struct {
	prog   *tea.Program
	events chan types.ButtonEvent
	done   chan struct{}
	once   sync.Once
	log    *slog.Logger
}

// New starts the terminal UI. quit is invoked when the user asks to exit
// from the keyboard (q / Ctrl+C), typically the signal context's cancel.
func New(quit func(), log *slog.Logger) *Sim {
	s := &Sim{
		events: make(chan types.ButtonEvent, eventQueueLen),
		done:   make(chan struct{}),
		log:    log,
	}
	s.prog = tea.NewProgram(model{events: s.events, quit: quit}, tea.WithAltScreen())
	go func() {
		defer close(s.done)
		if _, err := s.prog.Run(); err != nil {
			s.log.Error("simulation ui failed", "err", err)
		}
	}()
	return s
}

// ---- types.Display ----

func (s *Sim) WriteLine(row int, text string) error {
	if row < 0 || row >= types.DisplayRows {
		return &errcode.E{C: errcode.InvalidParams, Op: "sim.WriteLine"}
	}
	s.prog.Send(lineMsg{row: row, text: text})
	return nil
}

func (s *Sim) Clear() error {
	s.prog.Send(clearMsg{})
	return nil
}

// ---- types.ButtonSource ----

func (s *Sim) Events() <-chan types.ButtonEvent { return s.events }

// Close stops the UI and closes the event channel. Safe to call twice.
func (s *Sim) Close() error {
	s.once.Do(func() {
		s.prog.Quit()
		select {
		case <-s.done:
		case <-time.After(2 * time.Second):
			s.log.Warn("simulation ui did not stop in time")
			s.prog.Kill()
		}
		close(s.events)
	})
	return nil
}
