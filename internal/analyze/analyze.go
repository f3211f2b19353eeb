// internal/analyze/analyze.go
// Package: analyze
package analyze

import (
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/report"
)

// PeakUsage holds the maximum observed resource usage for one model
// across every snapshot of every run. Models with no process-level
// data report zeros for the process fields, never an error.
type PeakUsage struct {
	MaxSystemCPU   float64 `json:"max_system_cpu"`
	MaxOllamaCPU   float64 `json:"max_ollama_cpu"`
	MaxOllamaRAMGB float64 `json:"max_ollama_ram_gb"`
}

// AnalyzeResourceUsage computes per-model peak resource usage from raw
// run records, typically read back from a persisted report. Pure
// function; missing snapshot fields count as 0.0 for max comparison.
func AnalyzeResourceUsage(rawResults map[string][]report.RunRecord) map[string]PeakUsage {
	peaks := make(map[string]PeakUsage, len(rawResults))

	for model, runs := range rawResults {
		peak := PeakUsage{}
		for _, run := range runs {
			for _, snap := range run.ResourceSnapshots {
				if snap.SystemCPUPercent > peak.MaxSystemCPU {
					peak.MaxSystemCPU = snap.SystemCPUPercent
				}
				if snap.OllamaCPUPercent != nil && *snap.OllamaCPUPercent > peak.MaxOllamaCPU {
					peak.MaxOllamaCPU = *snap.OllamaCPUPercent
				}
				if snap.OllamaRAMRSSGB != nil && *snap.OllamaRAMRSSGB > peak.MaxOllamaRAMGB {
					peak.MaxOllamaRAMGB = *snap.OllamaRAMRSSGB
				}
			}
		}
		peaks[model] = peak
	}

	return peaks
}
