// internal/bench/runner.go
// Package: bench
package bench

import (
	"context"
	"log/slog"
	"time"

	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/config"
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/report"
)

// pacingDelay is the pause between iterations, letting transient CPU
// load from the previous request settle before the next snapshot.
const pacingDelay = 1 * time.Second

// Generator runs one streamed generation request and returns its
// metrics. Satisfied by *ollama.Client.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (report.GenerationMetrics, error)
}

// Snapshotter captures one resource snapshot. Satisfied by
// *monitor.Sampler.
type Snapshotter interface {
	Snapshot() (report.ResourceSnapshot, error)
}

// Event is a progress notification from a running session. The plain
// and live-view frontends both consume the same stream.
type Event any

// ModelStarted announces the start of a model's iteration block.
type ModelStarted struct {
	Model string
	Index int // 1-based position among the configured models
	Total int
}

// RunStarted announces that a request is about to be issued.
type RunStarted struct {
	Model string
	Run   int // 1-based iteration
	Total int
}

// RunCompleted carries the metrics of a finished iteration.
type RunCompleted struct {
	Model   string
	Run     int
	Total   int
	Metrics report.GenerationMetrics
}

// RunSkipped reports a generation failure; the iteration is dropped
// and the session continues.
type RunSkipped struct {
	Model string
	Run   int
	Total int
	Err   error
}

// SessionDone is the final event. Err is non-nil when the session
// aborted (fatal snapshot failure or report write failure).
type SessionDone struct {
	ReportPath string
	Err        error
}

// Runner orchestrates one benchmarking session: for each model, for
// each iteration, snapshot, generate, snapshot, record. Strictly
// sequential; snapshots must bracket the exact wall-clock interval of a
// single request to be meaningful.
type Runner struct {
	cfg     *config.Config
	client  Generator
	sampler Snapshotter
	agg     *report.Aggregator
	logger  *slog.Logger

	pace time.Duration
	sink func(Event)
}

// NewRunner wires a session runner. sink may be nil.
func NewRunner(cfg *config.Config, client Generator, sampler Snapshotter, logger *slog.Logger, sink func(Event)) *Runner {
	if sink == nil {
		sink = func(Event) {}
	}
	return &Runner{
		cfg:     cfg,
		client:  client,
		sampler: sampler,
		agg:     report.NewAggregator(),
		logger:  logger,
		pace:    pacingDelay,
		sink:    sink,
	}
}

// Run executes the session to completion and writes the report to the
// configured output file. Generation failures skip the iteration;
// snapshot failures abort, since they indicate a broken runtime
// environment rather than a flaky model.
func (r *Runner) Run(ctx context.Context) error {
	err := r.run(ctx)
	r.sink(SessionDone{ReportPath: r.cfg.OutputFile, Err: err})
	return err
}

func (r *Runner) run(ctx context.Context) error {
	for mi, model := range r.cfg.ModelsToTest {
		r.logger.Info("Starting model", "model", model, "iterations", r.cfg.Iterations)
		r.sink(ModelStarted{Model: model, Index: mi + 1, Total: len(r.cfg.ModelsToTest)})

		for i := 1; i <= r.cfg.Iterations; i++ {
			r.sink(RunStarted{Model: model, Run: i, Total: r.cfg.Iterations})

			pre, err := r.sampler.Snapshot()
			if err != nil {
				return err
			}

			metrics, err := r.client.Generate(ctx, model, r.cfg.TestPrompt)
			if err != nil {
				r.logger.Error("Generation failed; skipping iteration", "model", model, "run", i, "error", err)
				r.sink(RunSkipped{Model: model, Run: i, Total: r.cfg.Iterations, Err: err})
				time.Sleep(r.pace)
				continue
			}

			post, err := r.sampler.Snapshot()
			if err != nil {
				return err
			}

			r.agg.AddRun(model, metrics, []report.ResourceSnapshot{pre, post})

			r.logger.Info("Run complete",
				"model", model,
				"run", i,
				"latency_s", metrics.TotalLatencyS,
				"tokens_per_s", metrics.TokensPerSecond,
			)
			r.sink(RunCompleted{Model: model, Run: i, Total: r.cfg.Iterations, Metrics: metrics})

			time.Sleep(r.pace)
		}
	}

	rep := r.agg.Finalize()
	if err := rep.Write(r.cfg.OutputFile); err != nil {
		return err
	}
	r.logger.Info("Report written", "path", r.cfg.OutputFile)
	return nil
}
