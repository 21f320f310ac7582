// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C3AED")). // Purple
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")). // Gray
			Italic(true)
)

// =============================================================================
// LINE MODEL
// =============================================================================

// lineModel is a one-question Bubble Tea program.
type lineModel struct {
	question string
	input    textinput.Model
	done     bool
	aborted  bool
}

func newLineModel(question string) lineModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()

	return lineModel{question: question, input: ti}
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	if m.done || m.aborted {
		// Leave the answered question on screen
		return questionStyle.Render(m.question) + "\n> " + m.input.Value() + "\n"
	}

	var s strings.Builder
	s.WriteString(questionStyle.Render(m.question))
	s.WriteString("\n")
	s.WriteString(m.input.View())
	s.WriteString("\n")
	s.WriteString(hintStyle.Render("enter to confirm, esc to cancel"))
	s.WriteString("\n")
	return s.String()
}

// =============================================================================
// TUI READER
// =============================================================================

// TUI reads each answer with a small Bubble Tea text input.
type TUI struct {
	in  io.Reader
	out io.Writer
}

// NewTUI creates a TUI line reader over the given terminal streams.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{in: in, out: out}
}

// ReadLine implements LineReader.
func (t *TUI) ReadLine(prompt string) (string, error) {
	program := tea.NewProgram(
		newLineModel(prompt),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	)

	final, err := program.Run()
	if err != nil {
		return "", err
	}

	m := final.(lineModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}

// Close implements LineReader.
func (t *TUI) Close() error { return nil }
