package bench

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/config"
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/report"
)

type fakeGenerator struct {
	calls   int
	failOn  map[int]bool // 1-based call numbers that fail
	latency float64
}

func (f *fakeGenerator) Generate(_ context.Context, model, prompt string) (report.GenerationMetrics, error) {
	f.calls++
	if f.failOn[f.calls] {
		return report.GenerationMetrics{}, errors.New("boom")
	}
	ttft := 0.1
	return report.GenerationMetrics{
		Prompt:            prompt,
		ResponseText:      "ok from " + model,
		TimeToFirstTokenS: &ttft,
		TotalLatencyS:     f.latency,
		TokensGenerated:   10,
		TokensPerSecond:   report.Round2(10 / f.latency),
	}, nil
}

type fakeSampler struct {
	t   float64
	err error
}

func (f *fakeSampler) Snapshot() (report.ResourceSnapshot, error) {
	if f.err != nil {
		return report.ResourceSnapshot{}, f.err
	}
	f.t += 0.5
	return report.ResourceSnapshot{Timestamp: f.t, SystemCPUPercent: 10 * f.t, SystemRAMUsedGB: 4}, nil
}

func testConfig(t *testing.T, models []string, iterations int) *config.Config {
	t.Helper()
	return &config.Config{
		ModelsToTest: models,
		TestPrompt:   "prompt",
		Iterations:   iterations,
		OutputFile:   filepath.Join(t.TempDir(), "results.json"),
		OllamaHost:   "http://localhost:11434",
	}
}

func newTestRunner(cfg *config.Config, gen Generator, samp Snapshotter, sink func(Event)) *Runner {
	r := NewRunner(cfg, gen, samp, slog.New(slog.NewTextHandler(io.Discard, nil)), sink)
	r.pace = 0 // no pacing sleeps in tests
	return r
}

func TestRun_RecordsBracketedSnapshots(t *testing.T) {
	cfg := testConfig(t, []string{"a", "b"}, 2)
	r := newTestRunner(cfg, &fakeGenerator{latency: 2.0}, &fakeSampler{}, nil)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	rep, err := report.Load(cfg.OutputFile)
	if err != nil {
		t.Fatalf("could not load written report: %v", err)
	}

	if len(rep.Metadata.TestModels) != 2 {
		t.Fatalf("test_models = %v, want [a b]", rep.Metadata.TestModels)
	}
	for _, model := range []string{"a", "b"} {
		runs := rep.RawResults[model]
		if len(runs) != 2 {
			t.Fatalf("model %s has %d runs, want 2", model, len(runs))
		}
		for _, run := range runs {
			if len(run.ResourceSnapshots) < 2 {
				t.Fatalf("run has %d snapshots, want >= 2", len(run.ResourceSnapshots))
			}
			pre, post := run.ResourceSnapshots[0], run.ResourceSnapshots[1]
			if post.Timestamp < pre.Timestamp {
				t.Fatalf("post snapshot precedes pre snapshot")
			}
		}
		if rep.SummaryByModel[model].TotalRuns != 2 {
			t.Fatalf("summary total_runs = %d, want 2", rep.SummaryByModel[model].TotalRuns)
		}
	}
}

func TestRun_GenerationFailureSkipsIteration(t *testing.T) {
	cfg := testConfig(t, []string{"a"}, 3)
	gen := &fakeGenerator{latency: 1.0, failOn: map[int]bool{2: true}}

	var skips int
	r := newTestRunner(cfg, gen, &fakeSampler{}, func(ev Event) {
		if _, ok := ev.(RunSkipped); ok {
			skips++
		}
	})

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run must survive generation failures, got: %v", err)
	}
	if skips != 1 {
		t.Fatalf("skips = %d, want 1", skips)
	}

	rep, err := report.Load(cfg.OutputFile)
	if err != nil {
		t.Fatalf("could not load written report: %v", err)
	}
	if got := rep.SummaryByModel["a"].TotalRuns; got != 2 {
		t.Fatalf("total_runs = %d, want 2 (one iteration skipped)", got)
	}
}

func TestRun_SnapshotFailureIsFatal(t *testing.T) {
	cfg := testConfig(t, []string{"a"}, 1)
	r := newTestRunner(cfg, &fakeGenerator{latency: 1.0}, &fakeSampler{err: errors.New("broken host")}, nil)

	if err := r.Run(context.Background()); err == nil {
		t.Fatalf("expected Run to abort on snapshot failure")
	}
}

func TestRun_EventSequence(t *testing.T) {
	cfg := testConfig(t, []string{"a"}, 1)

	var events []Event
	r := newTestRunner(cfg, &fakeGenerator{latency: 1.0}, &fakeSampler{}, func(ev Event) {
		events = append(events, ev)
	})

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(events) != 4 {
		t.Fatalf("got %d events, want 4 (model, start, complete, done): %#v", len(events), events)
	}
	if _, ok := events[0].(ModelStarted); !ok {
		t.Fatalf("events[0] = %#v, want ModelStarted", events[0])
	}
	if _, ok := events[1].(RunStarted); !ok {
		t.Fatalf("events[1] = %#v, want RunStarted", events[1])
	}
	if done, ok := events[3].(SessionDone); !ok || done.Err != nil {
		t.Fatalf("events[3] = %#v, want successful SessionDone", events[3])
	}
}
