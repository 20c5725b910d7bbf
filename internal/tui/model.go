package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zipbatch/internal/extractor"
)

type Model struct {
	updates   <-chan extractor.Update
	started   time.Time
	bar       progress.Model
	pending   int
	names     []string
	total     int
	current   int
	name      string
	done      int
	succeeded int
	failed    int
	notices   []string
	result    *extractor.RunResult

	interrupted bool
	quitting    bool
}

type doneMsg struct{}

type updateMsg extractor.Update

func NewModel(updates <-chan extractor.Update) Model {
	bar := progress.New(progress.WithSolidFill(string(ColorAccent)), progress.WithoutPercentage())
	bar.Width = 40
	return Model{updates: updates, started: time.Now(), bar: bar}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m = m.apply(extractor.Update(msg))
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = barWidth(msg.Width)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.interrupted = true
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) apply(u extractor.Update) Model {
	switch u.Kind {
	case extractor.UpdatePending:
		m.pending = u.Pending
		m.names = u.Names
	case extractor.UpdateProgress:
		m.current = u.Index
		m.total = u.Total
		m.name = u.Name
	case extractor.UpdateItemDone:
		if u.Outcome.OK() {
			m.succeeded++
			m.done = u.Index
		} else {
			m.failed++
		}
	case extractor.UpdateNoArchives:
		m.notices = append(m.notices, fmt.Sprintf("No zip files found in %s", u.Dir))
	case extractor.UpdatePrecondition:
		m.notices = append(m.notices, u.Err.Error())
	case extractor.UpdateCompleted:
		result := u.Result
		m.result = &result
		m.total = result.Total()
	}
	return m
}

// Interrupted reports whether the user quit before the run completed.
func (m Model) Interrupted() bool {
	return m.interrupted
}

func (m Model) ratio() float64 {
	if m.total == 0 {
		return 0
	}
	r := float64(m.done) / float64(m.total)
	if r > 1 {
		r = 1
	}
	return r
}

func (m Model) status() string {
	switch {
	case m.result != nil:
		return extractor.CompletedLabel(*m.result)
	case m.current > 0:
		return extractor.ProgressLabel(m.current, m.total, m.name)
	default:
		return "Ready to extract"
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{
		titleStyle.Render("zipbatch 📦"),
		labelStyle.Render(m.status()),
		m.bar.ViewAs(m.ratio()),
		labelStyle.Render(extractor.PendingLabel(m.pending)) + dimStyle.Render(fmt.Sprintf("  ok:%d failed:%d", m.succeeded, m.failed)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
	}
	lines = append(lines, pendingLines(m.names)...)
	for _, notice := range m.notices {
		lines = append(lines, warnStyle.Render(notice))
	}

	return strings.Join(lines, "\n")
}

// maxListedNames caps the pending archives shown under the counters.
const maxListedNames = 3

func pendingLines(names []string) []string {
	var lines []string
	for i, name := range names {
		if i == maxListedNames {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("  ... and %d more", len(names)-maxListedNames)))
			break
		}
		lines = append(lines, labelStyle.Render("  "+name))
	}
	return lines
}

func listenForUpdates(updates <-chan extractor.Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func barWidth(termWidth int) int {
	width := termWidth - 10
	if width > 60 {
		width = 60
	}
	if width < 20 {
		width = 20
	}
	return width
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	warnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
)
