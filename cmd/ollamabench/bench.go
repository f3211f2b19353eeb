// cmd/ollamabench/bench.go
package ollamabench

import (
	"context"
	"io"
	"log/slog"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/bench"
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/cli"
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/config"
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/monitor"
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/ollama"
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/output"
)

var (
	benchConfigPath string
	benchPlain      bool
)

// benchCmd runs a full benchmarking session against every model in the
// config and writes the JSON report.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the benchmark suite",
	Long: `The 'bench' subcommand runs the configured number of iterations for each
model in models_to_test, bracketing every generation request with
resource snapshots, and writes the aggregated report to output_file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(benchConfigPath)
		if err != nil {
			return err
		}
		if cfg.Debug {
			pp.Println(cfg)
		}

		logger := output.Logger
		if !benchPlain {
			// The live view owns the terminal; keep slog out of it.
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}

		client := ollama.NewClient(cfg.OllamaHost, cfg.RequestTimeout())
		sampler := monitor.NewSampler(
			monitor.SystemLocator{},
			monitor.SystemHostStats{},
			monitor.NewTemperatureReader(),
			cfg.ProcessName,
			logger,
		)

		if benchPlain {
			runner := bench.NewRunner(cfg, client, sampler, logger, nil)
			return runner.Run(context.Background())
		}

		return cli.RunWithProgress(func(sink func(bench.Event)) error {
			runner := bench.NewRunner(cfg, client, sampler, logger, sink)
			return runner.Run(context.Background())
		})
	},
}

func init() {
	benchCmd.Flags().StringVar(&benchConfigPath, "config", "config.yaml", "path to the benchmark config file")
	benchCmd.Flags().BoolVar(&benchPlain, "plain", false, "log progress lines instead of the live view")
	rootCmd.AddCommand(benchCmd)
}
