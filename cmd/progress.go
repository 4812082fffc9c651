package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type operationDoneMsg struct {
	err error
}

type operationProgressMsg struct {
	percent int
}

// operationProgressModel renders a spinner plus a synthetic progress bar
// while a setup or removal runs against the backend.
type operationProgressModel struct {
	spinner spinner.Model
	bar     progress.Model
	label   string
	percent int
	run     tea.Cmd
	err     error
	done    bool
}

func newOperationProgressModel(label string, run tea.Cmd) operationProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return operationProgressModel{
		spinner: s,
		bar:     bar,
		label:   label,
		run:     run,
	}
}

func (m operationProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m operationProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case operationProgressMsg:
		m.percent = msg.percent
		return m, nil
	case operationDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m operationProgressModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s %s %3d%%",
		m.spinner.View(), m.label, m.bar.ViewAs(float64(m.percent)/100), m.percent)
}

// runWithProgress drives run inside a bubbletea program. The OnProgress
// callback handed to run forwards percentages into the program; run's error
// is returned once the program exits.
func runWithProgress(ctx context.Context, output io.Writer, label string, run func(ctx context.Context, onProgress func(percent int)) error) error {
	var program *tea.Program

	runCmd := func() tea.Msg {
		err := run(ctx, func(percent int) {
			program.Send(operationProgressMsg{percent: percent})
		})
		return operationDoneMsg{err: err}
	}

	program = tea.NewProgram(
		newOperationProgressModel(label, runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := program.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(operationProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}
