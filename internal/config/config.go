// internal/config/config.go
// Package: config
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the benchmark session configuration, loaded from a YAML
// file. Validation checks presence only; semantics (whether a model tag
// exists, whether the host answers) surface at run time.
type Config struct {
	ModelsToTest []string `mapstructure:"models_to_test"`
	TestPrompt   string   `mapstructure:"test_prompt"`
	Iterations   int      `mapstructure:"iterations"`
	OutputFile   string   `mapstructure:"output_file"`
	OllamaHost   string   `mapstructure:"ollama_host"`

	// Optional keys.
	ProcessName     string `mapstructure:"process_name"`
	RequestTimeoutS int    `mapstructure:"request_timeout_s"`
	Debug           bool   `mapstructure:"debug"`
}

// requiredKeys must all be present in the config file; a missing key
// aborts before any run.
var requiredKeys = []string{
	"models_to_test",
	"test_prompt",
	"iterations",
	"output_file",
	"ollama_host",
}

// Load reads and validates the YAML configuration at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("process_name", "ollama")
	v.SetDefault("request_timeout_s", 120)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config file %s: %w", path, err)
	}

	for _, key := range requiredKeys {
		if !v.IsSet(key) || isEmpty(v.Get(key)) {
			return nil, fmt.Errorf("configuration key '%s' is missing in %s", key, path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	}
	return false
}

// RequestTimeout returns the per-request HTTP timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutS) * time.Second
}
