// cmd/ollamabench/analyze.go
package ollamabench

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/analyze"
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/report"
)

// defaultReportFile matches the default output_file of bench configs.
const defaultReportFile = "benchmark_results.json"

// analyzeCmd renders the performance summary and peak resource usage
// tables from a persisted report, independently of the session that
// produced it.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [report-file]",
	Short: "Analyze a persisted benchmark report",
	Long: `The 'analyze' subcommand loads a JSON report written by 'bench' and
prints the per-model performance summary plus peak host/process
resource usage tables.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultReportFile
		if len(args) == 1 {
			path = args[0]
		}

		rep, err := report.Load(path)
		if err != nil {
			return err
		}

		fmt.Print(analyze.Render(rep))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
