// Package tui renders the live anytime-solution progress view: one line
// re-rendered per on_progress emission, in the teacher's bubbletea/lipgloss
// style.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pintowar/bellum-sub001/internal/scheduler"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// progressMsg wraps one emitted solution for the bubbletea update loop.
type progressMsg scheduler.SchedulerSolution

// DoneMsg signals the run finished, carrying its final solution or error.
type DoneMsg struct {
	Solution scheduler.SchedulerSolution
	Err      error
}

// Model is the bubbletea model driving the live progress view.
type Model struct {
	solverName string
	updates    <-chan progressMsg
	done       <-chan DoneMsg

	history []scheduler.SchedulerSolution
	final   *scheduler.SchedulerSolution
	err     error
}

// NewModel returns a Model that reads solutions from updates until done
// fires.
func NewModel(solverName string, updates <-chan scheduler.SchedulerSolution, done <-chan DoneMsg) Model {
	wrapped := make(chan progressMsg)
	go func() {
		for u := range updates {
			wrapped <- progressMsg(u)
		}
		close(wrapped)
	}()
	return Model{solverName: solverName, updates: wrapped, done: done}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), waitForDone(m.done))
}

func waitForUpdate(ch <-chan progressMsg) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return nil
		}
		return u
	}
}

func waitForDone(ch <-chan DoneMsg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case progressMsg:
		m.history = append(m.history, scheduler.SchedulerSolution(msg))
		return m, waitForUpdate(m.updates)
	case DoneMsg:
		final := msg.Solution
		m.final = &final
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	out := headerStyle.Render(fmt.Sprintf("solving with %s", m.solverName)) + "\n\n"
	for i, s := range m.history {
		makespan, _ := s.Project.TotalDuration()
		out += goodStyle.Render(fmt.Sprintf("#%02d  makespan=%s  priorityCost=%d  (t=%s)",
			i+1, makespan.Truncate(time.Second), s.Project.PriorityCost(), s.Duration.Truncate(time.Millisecond))) + "\n"
	}
	if m.final != nil {
		makespan, _ := m.final.Project.TotalDuration()
		out += "\n" + headerStyle.Render(fmt.Sprintf("final: makespan=%s priorityCost=%d optimal=%v",
			makespan.Truncate(time.Second), m.final.Project.PriorityCost(), m.final.Optimal))
	}
	if m.err != nil {
		out += "\n" + dimStyle.Render("error: "+m.err.Error())
	}
	out += "\n" + dimStyle.Render("(press q to quit)") + "\n"
	return out
}
