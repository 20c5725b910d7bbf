package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"zipbatch/internal/extractor"
)

type SummaryRow struct {
	Label string
	Value string
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// ResultRows lays out the counters of a finished run.
func ResultRows(r extractor.RunResult) []SummaryRow {
	rows := []SummaryRow{
		{Label: "Archives extracted", Value: fmt.Sprintf("%d", r.Succeeded)},
		{Label: "Archives failed", Value: fmt.Sprintf("%d", len(r.Failures))},
	}
	if r.Cancelled {
		rows = append(rows, SummaryRow{Label: "Archives skipped", Value: fmt.Sprintf("%d", r.Skipped)})
	}
	rows = append(rows,
		SummaryRow{Label: "Bytes written", Value: FormatBytes(r.Bytes())},
		SummaryRow{Label: "Elapsed", Value: r.Duration().Round(time.Millisecond).String()},
		SummaryRow{Label: "Run", Value: r.ID},
	)
	return rows
}

// RenderResult is the end-of-run report: the counter table followed by the
// outcome message.
func RenderResult(r extractor.RunResult) string {
	lines := []string{RenderSummary(ResultRows(r))}
	switch {
	case len(r.Failures) == 0 && !r.Cancelled:
		lines = append(lines, successStyle.Render(extractor.Summarize(r)))
	default:
		lines = append(lines, warnStyle.Render(extractor.Summarize(r)))
	}
	return strings.Join(lines, "\n")
}

var printer = message.NewPrinter(language.English)

// FormatBytes groups digits, e.g. 1,048,576.
func FormatBytes(n int64) string {
	return printer.Sprintf("%d", n)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	valueStyle   = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
)
