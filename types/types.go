package types

import "time"

// 16x2 character display geometry. The display collaborator owns truncation
// and padding to these bounds.
const (
	DisplayCols = 16
	DisplayRows = 2
)

// ---- Buttons ----

// Button identifies one of the three logical buttons.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonTimer
)

func (b Button) String() string {
	switch b {
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	case ButtonTimer:
		return "timer"
	default:
		return "unknown"
	}
}

// ButtonEvent is one debounced (hardware layer only) press edge.
type ButtonEvent struct {
	Button Button
	TS     time.Time
}

// ---- Capabilities ----

// Display is the display collaborator: two rows of DisplayCols characters.
type Display interface {
	WriteLine(row int, text string) error
	Clear() error
	Close() error
}

// ButtonSource delivers press edges from a hardware or simulated input.
// The channel is closed by Close.
type ButtonSource interface {
	Events() <-chan ButtonEvent
	Close() error
}

// ---- Bus payloads ----

// ControllerState is the retained diagnostic snapshot published on
// controller/state after every state mutation.
type ControllerState struct {
	Index    int    `json:"index"`
	Product  string `json:"product"`
	Running  bool   `json:"running"`
	ElapsedS int    `json:"elapsed_s"`
	TSms     int64  `json:"ts_ms"`
}
