// internal/cli/progress.go
// Package: cli
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/bench"
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/report"
)

var (
	headerStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// tickMsg drives the elapsed-seconds timer while a request is in
// flight.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// progressModel is the Bubble Tea model for a live benchmark session.
// Session events arrive via p.Send from the runner goroutine.
type progressModel struct {
	spinner spinner.Model

	model       string
	modelIndex  int
	modelTotal  int
	run         int
	runTotal    int
	inFlight    bool
	requestTime time.Time

	lastMetrics *report.GenerationMetrics
	lastSkip    error
	skipped     int

	done       bool
	reportPath string
	sessionErr error
}

func newProgressModel() *progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &progressModel{spinner: s}
}

// Init starts the spinner animation.
func (m *progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles key presses, timer ticks, and session events.
func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case bench.ModelStarted:
		m.model = msg.Model
		m.modelIndex = msg.Index
		m.modelTotal = msg.Total
		return m, nil

	case bench.RunStarted:
		m.run = msg.Run
		m.runTotal = msg.Total
		m.inFlight = true
		m.requestTime = time.Now()
		m.lastSkip = nil
		return m, tea.Batch(m.spinner.Tick, tickCmd())

	case bench.RunCompleted:
		m.inFlight = false
		metrics := msg.Metrics
		m.lastMetrics = &metrics
		return m, nil

	case bench.RunSkipped:
		m.inFlight = false
		m.lastSkip = msg.Err
		m.skipped++
		return m, nil

	case bench.SessionDone:
		m.done = true
		m.inFlight = false
		m.reportPath = msg.ReportPath
		m.sessionErr = msg.Err
		return m, tea.Quit

	case tickMsg:
		if m.inFlight {
			return m, tickCmd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the session header, the in-flight spinner line, and the
// last completed run's metrics.
func (m *progressModel) View() string {
	var b strings.Builder

	if m.model != "" {
		modelInfo := headerStyle.Render(fmt.Sprintf("Model: %s (%d/%d)", m.model, m.modelIndex, m.modelTotal))
		runInfo := headerStyle.MarginLeft(1).Render(fmt.Sprintf("Run: %d/%d", m.run, m.runTotal))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, modelInfo, runInfo))
		b.WriteString(faintStyle.Render(" (q to quit)"))
		b.WriteString("\n\n")
	}

	switch {
	case m.done && m.sessionErr != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Session failed: %v", m.sessionErr)) + "\n")
	case m.done:
		b.WriteString(okStyle.Render(fmt.Sprintf("Benchmarking complete. Report written to %s", m.reportPath)) + "\n")
	case m.inFlight:
		timer := fmt.Sprintf("%.1f", time.Since(m.requestTime).Seconds())
		b.WriteString(fmt.Sprintf("  %s Generating... %ss\n", m.spinner.View(), timer))
	}

	if m.lastSkip != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  last run skipped: %v", m.lastSkip)) + "\n")
	} else if m.lastMetrics != nil {
		ttft := "-"
		if m.lastMetrics.TimeToFirstTokenS != nil {
			ttft = fmt.Sprintf("%.4fs", *m.lastMetrics.TimeToFirstTokenS)
		}
		b.WriteString(faintStyle.Render(fmt.Sprintf(
			"  last run: latency %.4fs | TTFT %s | %.2f tok/s | %d tokens",
			m.lastMetrics.TotalLatencyS, ttft, m.lastMetrics.TokensPerSecond, m.lastMetrics.TokensGenerated,
		)) + "\n")
	}

	if m.skipped > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  skipped runs: %d", m.skipped)) + "\n")
	}

	return b.String()
}

// RunWithProgress runs a benchmark session behind a live progress view.
// The session executes in a goroutine and reports through the event
// sink; the returned error is the session's, not the UI's, unless the
// UI itself failed to start.
func RunWithProgress(run func(sink func(bench.Event)) error) error {
	m := newProgressModel()
	p := tea.NewProgram(m)

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(func(ev bench.Event) {
			p.Send(ev)
		})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("could not run progress view: %w", err)
	}
	return <-errCh
}
