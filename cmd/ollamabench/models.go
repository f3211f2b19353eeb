// cmd/ollamabench/models.go
package ollamabench

import (
	"github.com/spf13/cobra"

	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/config"
	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/models"
)

var modelsConfigPath string

// modelsCmd lists the model tags served by the configured host, so an
// operator can check names before listing them in models_to_test.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available on the configured host",
	Long:  `The 'models' subcommand lists all model tags on the configured Ollama host and marks the ones currently loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(modelsConfigPath)
		if err != nil {
			return err
		}
		return models.PrintModels(cfg.OllamaHost)
	},
}

func init() {
	modelsCmd.Flags().StringVar(&modelsConfigPath, "config", "config.yaml", "path to the benchmark config file")
	rootCmd.AddCommand(modelsCmd)
}
