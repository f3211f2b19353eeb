// internal/analyze/render.go
// Package: analyze
package analyze

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/report"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// FormatMemoryUsage renders a GB value as both GB and MB, e.g.
// "1.25 GB (1280 MB)". Zero and negative values render as zero.
func FormatMemoryUsage(gb float64) string {
	if gb <= 0 {
		return "0.00 GB (0 MB)"
	}
	return fmt.Sprintf("%.2f GB (%d MB)", gb, int(gb*1024))
}

// Render builds the full human-readable analysis of a report: the
// per-model performance summary (averages) followed by the peak
// resource usage table computed from the raw results.
func Render(rep report.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("LLM Benchmark Analysis Report"))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Performance Summary (Averages)"))
	b.WriteString("\n")
	b.WriteString(summaryTable(rep))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Peak Resource Usage"))
	b.WriteString("\n")
	b.WriteString(peakTable(rep))
	b.WriteString("\n")

	return b.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func summaryTable(rep report.Report) string {
	t := newTable("Model", "Runs", "Latency (s)", "TTFT (s)", "Tokens/s")
	for _, model := range rep.Metadata.TestModels {
		summary, ok := rep.SummaryByModel[model]
		if !ok {
			continue
		}
		t.Row(
			model,
			fmt.Sprintf("%d", summary.TotalRuns),
			fmt.Sprintf("%.4f", summary.TotalLatencyS),
			fmt.Sprintf("%.4f", summary.TimeToFirstTokenS),
			fmt.Sprintf("%.2f", summary.TokensPerSecond),
		)
	}
	return t.Render()
}

func peakTable(rep report.Report) string {
	peaks := AnalyzeResourceUsage(rep.RawResults)

	t := newTable("Model", "Max Host CPU (%)", "Max Ollama CPU (%)", "Max Ollama RAM")
	for _, model := range rep.Metadata.TestModels {
		peak, ok := peaks[model]
		if !ok {
			continue
		}
		t.Row(
			model,
			fmt.Sprintf("%.1f", peak.MaxSystemCPU),
			fmt.Sprintf("%.1f", peak.MaxOllamaCPU),
			FormatMemoryUsage(peak.MaxOllamaRAMGB),
		)
	}
	return t.Render()
}
