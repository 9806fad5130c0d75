package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Message types for updating the analysis progress model
type (
	PromptCountMsg int
	PromptStartMsg string
	PromptDoneMsg  struct{}
	DoneMsg        struct{ Err error }
)

// Model is the Bubbletea model for the analyze batch progress display
type Model struct {
	spinner     spinner.Model
	progress    progress.Model
	currentOp   string
	promptCount int
	promptsDone int
	width       int
	quitting    bool
	err         error
}

// NewModel creates a new progress model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	p := progress.New(progress.WithDefaultGradient())

	return Model{
		spinner:  s,
		progress: p,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 4
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PromptCountMsg:
		m.promptCount = int(msg)
		return m, nil

	case PromptStartMsg:
		m.currentOp = string(msg)
		return m, nil

	case PromptDoneMsg:
		m.promptsDone++
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	line := fmt.Sprintf("%s %s", m.spinner.View(), m.currentOp)
	if m.promptCount > 0 {
		pct := float64(m.promptsDone) / float64(m.promptCount)
		line += fmt.Sprintf("\n  %s %d/%d", m.progress.ViewAs(pct), m.promptsDone, m.promptCount)
	}
	return line + "\n"
}
