// cmd/ollamabench/root.go
package ollamabench

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base Cobra command for the benchmark CLI. All
// subcommands are attached to this root.
var rootCmd = &cobra.Command{
	Use:   "ollamabench",
	Short: "Benchmark local Ollama models with resource monitoring",
	Long: `ollamabench drives repeated streamed generation requests against the
models listed in config.yaml, samples host and Ollama-process resource
usage around each request, and writes a JSON report of per-model
averages and raw runs. Use 'analyze' to render summary and peak
resource usage tables from a persisted report.`,
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
