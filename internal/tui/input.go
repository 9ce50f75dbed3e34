package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputModel is the Bubble Tea model for a single labelled input line.
type InputModel struct {
	label     string
	input     textinput.Model
	help      help.Model
	keys      inputKeys
	submitted bool
	aborted   bool
}

// NewInputModel creates a focused InputModel showing "<label>: ".
func NewInputModel(label string) InputModel {
	ti := textinput.New()
	ti.Prompt = label + ": "
	ti.Focus()

	return InputModel{
		label: label,
		input: ti,
		help:  help.New(),
		keys:  InputKeyMap(),
	}
}

// Init starts the cursor blink.
func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, delegating editing keys to the text input.
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.submitted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Abort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the input line and help bar. Once finished it renders only
// the submitted line so it stays in the scrollback.
func (m InputModel) View() string {
	if m.submitted {
		return fmt.Sprintf("%s: %s\n", m.label, m.input.Value())
	}
	if m.aborted {
		return fmt.Sprintf("%s:\n", m.label)
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Value returns the text entered so far.
func (m InputModel) Value() string {
	return m.input.Value()
}

// Submitted reports whether the line was confirmed with Enter.
func (m InputModel) Submitted() bool {
	return m.submitted
}

// Aborted reports whether the user aborted input.
func (m InputModel) Aborted() bool {
	return m.aborted
}
