package progress

import (
	"fmt"
	"io"
	"strings"

	pbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/minepkg/minelaunch/internals/cmdlog"
)

var (
	stepStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2bb5ff"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#777"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4f4f"))
)

type phaseMsg Step
type progressMsg Progress
type speedMsg int64
type finishMsg struct {
	step Step
	err  error
}

type fancyModel struct {
	bar      pbar.Model
	step     Step
	current  Progress
	speed    int64
	finished []string
}

func (m fancyModel) Init() tea.Cmd { return nil }

func (m fancyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case phaseMsg:
		m.step = Step(msg)
		m.current = Progress{Step: Step(msg)}
	case progressMsg:
		m.current = Progress(msg)
	case speedMsg:
		m.speed = int64(msg)
	case finishMsg:
		line := "┃ " + msg.step.String() + " ✓"
		if msg.err != nil {
			line = failStyle.Render("┃ " + msg.step.String() + " failed")
		}
		m.finished = append(m.finished, line)
		m.step = 0
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 30
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m fancyModel) View() string {
	b := strings.Builder{}
	for _, line := range m.finished {
		b.WriteString(line + "\n")
	}
	if m.step == 0 {
		return b.String()
	}

	percent := 0.0
	if m.current.Total > 0 {
		percent = float64(m.current.Completed) / float64(m.current.Total)
	}
	b.WriteString(stepStyle.Render("┃ "+m.step.String()) + " ")
	b.WriteString(m.bar.ViewAs(percent))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %d/%d", m.current.Completed, m.current.Total)))
	if m.step == StepDownload && m.speed > 0 {
		b.WriteString(dimStyle.Render(" " + cmdlog.HumanRate(m.speed)))
	}
	b.WriteString("\n")
	return b.String()
}

// FancySink renders a progress bar using bubbletea. Close must be called when done
type FancySink struct {
	program *tea.Program
	done    chan struct{}
}

// NewFancySink starts the bubbletea program
func NewFancySink(out io.Writer) *FancySink {
	model := fancyModel{bar: pbar.New(pbar.WithDefaultGradient(), pbar.WithWidth(40))}
	s := &FancySink{
		program: tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil)),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		s.program.Run()
	}()
	return s
}

func (s *FancySink) Phase(step Step) { s.program.Send(phaseMsg(step)) }
func (s *FancySink) Progress(p Progress) { s.program.Send(progressMsg(p)) }
func (s *FancySink) Speed(bps int64) { s.program.Send(speedMsg(bps)) }
func (s *FancySink) Finish(step Step, err error) {
	s.program.Send(finishMsg{step: step, err: err})
}

// Close stops the program and waits for the last render
func (s *FancySink) Close() {
	s.program.Quit()
	<-s.done
}
