// internal/report/aggregator.go
// Package: report
package report

import (
	"math"
	"slices"
	"time"
)

// Aggregator accumulates per-run records keyed by model and computes
// the per-model mean statistics for the final report. Purely in-memory;
// AddRun never fails. Not safe for concurrent use, which is fine: the
// benchmark loop is strictly sequential.
type Aggregator struct {
	order   []string // models in first-seen order
	results map[string][]RunRecord
	now     func() time.Time
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		results: map[string][]RunRecord{},
		now:     time.Now,
	}
}

// AddRun appends one completed iteration for the given model. The
// snapshots slice is expected to hold at least the pre- and
// post-request snapshot, in capture order.
func (a *Aggregator) AddRun(model string, metrics GenerationMetrics, snapshots []ResourceSnapshot) {
	if _, seen := a.results[model]; !seen {
		a.order = append(a.order, model)
	}
	a.results[model] = append(a.results[model], RunRecord{
		RunTimestamp:      a.now().Format(time.RFC3339),
		LLMMetrics:        metrics,
		ResourceSnapshots: slices.Clone(snapshots),
	})
}

// Summarize computes arithmetic means across all runs recorded for the
// model, each rounded to 4 decimal places. The second return value is
// false when the model has no runs.
func (a *Aggregator) Summarize(model string) (ModelSummary, bool) {
	runs := a.results[model]
	if len(runs) == 0 {
		return ModelSummary{}, false
	}

	var latency, ttft, tps float64
	for _, run := range runs {
		m := run.LLMMetrics
		latency += m.TotalLatencyS
		if m.TimeToFirstTokenS != nil {
			ttft += *m.TimeToFirstTokenS
		}
		tps += m.TokensPerSecond
	}

	n := float64(len(runs))
	return ModelSummary{
		TotalRuns:         len(runs),
		TotalLatencyS:     Round4(latency / n),
		TimeToFirstTokenS: Round4(ttft / n),
		TokensPerSecond:   Round4(tps / n),
	}, true
}

// Finalize builds the full report: one summary per tracked model, in
// first-seen order, bundled with every raw record and a generation
// timestamp.
func (a *Aggregator) Finalize() Report {
	rep := Report{
		Metadata: Metadata{
			ReportGenerated: a.now().Format(time.RFC3339),
			TestModels:      slices.Clone(a.order),
		},
		SummaryByModel: map[string]ModelSummary{},
		RawResults:     map[string][]RunRecord{},
	}
	for _, model := range a.order {
		if summary, ok := a.Summarize(model); ok {
			rep.SummaryByModel[model] = summary
		}
		rep.RawResults[model] = slices.Clone(a.results[model])
	}
	return rep
}

// Round4 rounds to 4 decimal places, the reporting precision for
// durations and their means.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Round2 rounds to 2 decimal places, used for throughput and GB values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
