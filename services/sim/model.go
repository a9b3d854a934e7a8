package sim

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"productdisplay-go/types"
	"productdisplay-go/x/strx"
)

// Messages sent into the UI from the Display capability.
type lineMsg struct {
	row  int
	text string
}

type clearMsg struct{}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Faint(true)
)

const helpText = "↑/k prev · ↓/j next · t/space timer · q quit"

// model renders the simulated 16x2 panel and turns key presses into button
// events.
type model struct {
	lines  [types.DisplayRows]string
	events chan<- types.ButtonEvent
	quit   func()
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case lineMsg:
		if msg.row >= 0 && msg.row < types.DisplayRows {
			m.lines[msg.row] = msg.text
		}
		return m, nil
	case clearMsg:
		m.lines = [types.DisplayRows]string{}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.press(types.ButtonUp)
		case "down", "j":
			m.press(types.ButtonDown)
		case "t", " ", "space":
			m.press(types.ButtonTimer)
		case "q", "ctrl+c":
			if m.quit != nil {
				m.quit()
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

// press forwards a button event without ever blocking the UI loop.
func (m model) press(b types.Button) {
	select {
	case m.events <- types.ButtonEvent{Button: b, TS: time.Now()}:
	default:
	}
}

func (m model) View() string {
	panel := panelStyle.Render(
		strx.PadTo(m.lines[0], types.DisplayCols) + "\n" +
			strx.PadTo(m.lines[1], types.DisplayCols))
	return lipgloss.JoinVertical(lipgloss.Left, panel, helpStyle.Render(helpText))
}
