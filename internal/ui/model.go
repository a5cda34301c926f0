// Package ui renders plugin editors as terminal sliders with Bubbletea.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/gainplug/pkg/framework/editor"
)

// Slider steps
const (
	FineStep   = 0.5
	CoarseStep = 6.0
)

const defaultRefresh = 100 * time.Millisecond

type tickMsg time.Time

// Model is the Bubbletea model of one editor window. Slider values live in
// the editor's cells; the model only holds focus and layout.
type Model struct {
	Title    string
	Controls []editor.Slider
	Focus    int

	// Status is polled on every refresh and shown under the sliders.
	Status  func() string
	Refresh time.Duration

	Width    int
	Quitting bool
}

// NewModel creates a model for the window described by opts.
func NewModel(opts editor.Options, status func() string) Model {
	return Model{
		Title:    opts.Title,
		Controls: opts.Controls,
		Status:   status,
		Refresh:  defaultRefresh,
		Width:    opts.Size.Width / 16,
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the refresh ticker
func (m Model) Init() tea.Cmd {
	return tick(m.Refresh)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.Focus > 0 {
				m.Focus--
			}
		case "down", "j", "tab":
			if m.Focus < len(m.Controls)-1 {
				m.Focus++
			}
		case "left", "h":
			m.nudge(-FineStep)
		case "right", "l":
			m.nudge(FineStep)
		case "pgdown", "shift+left", "H":
			m.nudge(-CoarseStep)
		case "pgup", "shift+right", "L":
			m.nudge(CoarseStep)
		case "home":
			m.set(func(s editor.Slider) float64 { return s.Min })
		case "end":
			m.set(func(s editor.Slider) float64 { return s.Max })
		case "0":
			m.set(func(editor.Slider) float64 { return 0 })
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case tickMsg:
		// Values may have been changed by the host; redraw.
		return m, tick(m.Refresh)
	}

	return m, nil
}

func (m Model) focused() (editor.Slider, bool) {
	if m.Focus < 0 || m.Focus >= len(m.Controls) {
		return editor.Slider{}, false
	}
	return m.Controls[m.Focus], true
}

func (m Model) nudge(delta float64) {
	m.set(func(s editor.Slider) float64 { return s.Get() + delta })
}

func (m Model) set(value func(editor.Slider) float64) {
	s, ok := m.focused()
	if !ok || s.Set == nil {
		return
	}
	s.Set(s.Clamp(value(s)))
}

// View renders the window
func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	return renderWindow(m)
}
