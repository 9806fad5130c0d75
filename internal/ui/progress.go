package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgressController manages the bubbletea program for the analyze
// batch progress display
type ProgressController struct {
	ui      *UI
	program *tea.Program
}

// StartProgress starts the progress display if in interactive mode
// Returns nil if not in interactive mode
func (ui *UI) StartProgress() *ProgressController {
	if ui.Mode != OutputModeInteractive {
		return nil
	}

	m := NewModel()
	p := tea.NewProgram(m, tea.WithOutput(ui.ErrWriter))

	ctrl := &ProgressController{
		ui:      ui,
		program: p,
	}

	go func() {
		if _, err := p.Run(); err != nil {
			// Silently handle program errors
			_ = err
		}
	}()

	return ctrl
}

// SetPromptCount sets the total number of prompts to analyze
func (pc *ProgressController) SetPromptCount(count int) {
	if pc != nil && pc.program != nil {
		pc.program.Send(PromptCountMsg(count))
	}
}

// PromptStart indicates analysis of a prompt has started
func (pc *ProgressController) PromptStart(id int64) {
	if pc != nil && pc.program != nil {
		pc.program.Send(PromptStartMsg(fmt.Sprintf("Analyzing prompt #%d...", id)))
	}
}

// PromptDone indicates analysis of a prompt has completed
func (pc *ProgressController) PromptDone() {
	if pc != nil && pc.program != nil {
		pc.program.Send(PromptDoneMsg{})
	}
}

// Done signals that the batch is complete
func (pc *ProgressController) Done(err error) {
	if pc != nil && pc.program != nil {
		pc.program.Send(DoneMsg{Err: err})
		pc.program.Wait()
	}
}
