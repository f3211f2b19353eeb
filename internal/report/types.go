// internal/report/types.go
// Package: report
package report

// ResourceSnapshot is one point-in-time measurement of host and Ollama
// process resource usage. Snapshots are immutable once captured; the
// pointer fields are nil when the corresponding reading was unavailable
// (no sensor tool, no tracked process).
type ResourceSnapshot struct {
	Timestamp        float64 `json:"timestamp"` // epoch seconds
	SystemCPUPercent float64 `json:"system_cpu_percent"`
	SystemRAMUsedGB  float64 `json:"system_ram_used_gb"`

	SystemTempCelsius *float64 `json:"system_temp_celsius"`

	// Present only while the Ollama process is tracked.
	OllamaCPUPercent *float64 `json:"ollama_process_cpu_percent,omitempty"`
	OllamaRAMRSSGB   *float64 `json:"ollama_process_ram_rss_gb,omitempty"`

	// Set once the tracked process disappears mid-session.
	OllamaProcessStatus string `json:"ollama_process_status,omitempty"`
}

// GenerationMetrics captures client-side timing for a single streamed
// generation request. Durations are in seconds, rounded for reporting.
type GenerationMetrics struct {
	Prompt       string `json:"prompt"`
	ResponseText string `json:"response_text"`

	// Nil when the stream produced no chunks (empty response).
	TimeToFirstTokenS *float64 `json:"time_to_first_token_s"`

	TotalLatencyS   float64 `json:"total_latency_s"`
	TokensGenerated int     `json:"tokens_generated"`

	// eval_count / total latency; 0 when either is not positive.
	TokensPerSecond float64 `json:"tokens_per_second"`

	// Final stream event verbatim (eval_count, server-side durations).
	OllamaMetadata map[string]any `json:"ollama_metadata,omitempty"`
}

// RunRecord is one full benchmark iteration: the generation metrics
// plus the resource snapshots bracketing the request (pre and post, at
// minimum). Records are never mutated after being added.
type RunRecord struct {
	RunTimestamp      string             `json:"run_timestamp"` // RFC3339
	LLMMetrics        GenerationMetrics  `json:"llm_metrics"`
	ResourceSnapshots []ResourceSnapshot `json:"resource_snapshots"`
}

// ModelSummary holds per-model arithmetic means across all recorded
// runs, rounded to 4 decimal places. Resource usage is deliberately
// not averaged here; peak analysis lives in the analyze package.
type ModelSummary struct {
	TotalRuns         int     `json:"total_runs"`
	TotalLatencyS     float64 `json:"total_latency_s"`
	TimeToFirstTokenS float64 `json:"time_to_first_token_s"`
	TokensPerSecond   float64 `json:"tokens_per_second"`
}

// Metadata describes when a report was generated and which models it
// covers, in first-seen order.
type Metadata struct {
	ReportGenerated string   `json:"report_generated"` // RFC3339
	TestModels      []string `json:"test_models"`
}

// Report is the top-level artifact of a benchmarking session and the
// sole persistence format. The analyze command rereads it independently
// of the session that produced it.
type Report struct {
	Metadata       Metadata                `json:"metadata"`
	SummaryByModel map[string]ModelSummary `json:"summary_by_model"`
	RawResults     map[string][]RunRecord  `json:"raw_results"`
}
