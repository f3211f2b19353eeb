package analyze

import (
	"strings"
	"testing"

	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/report"
)

func pf(v float64) *float64 { return &v }

func hostOnlySnapshot(cpu float64) report.ResourceSnapshot {
	return report.ResourceSnapshot{Timestamp: 1, SystemCPUPercent: cpu, SystemRAMUsedGB: 4}
}

func processSnapshot(sysCPU, procCPU, procRAM float64) report.ResourceSnapshot {
	return report.ResourceSnapshot{
		Timestamp:        1,
		SystemCPUPercent: sysCPU,
		SystemRAMUsedGB:  4,
		OllamaCPUPercent: pf(procCPU),
		OllamaRAMRSSGB:   pf(procRAM),
	}
}

func runWith(snaps ...report.ResourceSnapshot) report.RunRecord {
	return report.RunRecord{RunTimestamp: "2025-01-01T00:00:00Z", ResourceSnapshots: snaps}
}

func TestAnalyze_HostOnlyModelReportsZeroProcessPeaks(t *testing.T) {
	raw := map[string][]report.RunRecord{
		"host-only": {runWith(hostOnlySnapshot(30), hostOnlySnapshot(60))},
		"tracked": {
			runWith(processSnapshot(20, 150.5, 2.5), processSnapshot(40, 301.0, 3.75)),
		},
	}

	peaks := AnalyzeResourceUsage(raw)

	hostOnly := peaks["host-only"]
	if hostOnly.MaxOllamaCPU != 0.0 || hostOnly.MaxOllamaRAMGB != 0.0 {
		t.Fatalf("host-only model must report zero process peaks, got %+v", hostOnly)
	}
	if hostOnly.MaxSystemCPU != 60.0 {
		t.Fatalf("max_system_cpu = %v, want 60.0", hostOnly.MaxSystemCPU)
	}

	tracked := peaks["tracked"]
	if tracked.MaxOllamaCPU != 301.0 {
		t.Fatalf("max_ollama_cpu = %v, want 301.0", tracked.MaxOllamaCPU)
	}
	if tracked.MaxOllamaRAMGB != 3.75 {
		t.Fatalf("max_ollama_ram_gb = %v, want 3.75", tracked.MaxOllamaRAMGB)
	}
}

func TestAnalyze_MaxAcrossRuns(t *testing.T) {
	raw := map[string][]report.RunRecord{
		"B": {
			runWith(hostOnlySnapshot(10.0)),
			runWith(hostOnlySnapshot(85.0)),
		},
	}

	peaks := AnalyzeResourceUsage(raw)
	if peaks["B"].MaxSystemCPU != 85.0 {
		t.Fatalf("max_system_cpu = %v, want 85.0", peaks["B"].MaxSystemCPU)
	}
}

func TestAnalyze_EmptyModelDoesNotPanic(t *testing.T) {
	raw := map[string][]report.RunRecord{"empty": {}}
	peaks := AnalyzeResourceUsage(raw)
	if got := peaks["empty"]; got != (PeakUsage{}) {
		t.Fatalf("empty model peaks = %+v, want zeros", got)
	}
}

func TestFormatMemoryUsage(t *testing.T) {
	if got := FormatMemoryUsage(0); got != "0.00 GB (0 MB)" {
		t.Fatalf("FormatMemoryUsage(0) = %q", got)
	}
	if got := FormatMemoryUsage(-1); got != "0.00 GB (0 MB)" {
		t.Fatalf("FormatMemoryUsage(-1) = %q", got)
	}
	if got := FormatMemoryUsage(1.25); got != "1.25 GB (1280 MB)" {
		t.Fatalf("FormatMemoryUsage(1.25) = %q", got)
	}
}

func TestRender_ContainsModelsAndHeaders(t *testing.T) {
	rep := report.Report{
		Metadata: report.Metadata{
			ReportGenerated: "2025-01-01T00:00:00Z",
			TestModels:      []string{"llama3.2:1b"},
		},
		SummaryByModel: map[string]report.ModelSummary{
			"llama3.2:1b": {TotalRuns: 3, TotalLatencyS: 3.0, TimeToFirstTokenS: 0.5, TokensPerSecond: 42.42},
		},
		RawResults: map[string][]report.RunRecord{
			"llama3.2:1b": {runWith(processSnapshot(50, 200, 1.5))},
		},
	}

	out := Render(rep)
	for _, want := range []string{"llama3.2:1b", "Performance Summary", "Peak Resource Usage", "Tokens/s", "42.42", "1.50 GB"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered analysis missing %q:\n%s", want, out)
		}
	}
}
