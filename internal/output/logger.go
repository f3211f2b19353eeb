// internal/output/logger.go
// Package: output
package output

import (
	"log/slog"
	"os"
)

// Logger is the process-wide structured logger. Text handler on stdout;
// benchmark progress reads better as key/value lines than as JSON.
var Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// SetLogger overrides the default logger, mainly for tests that want
// to silence or capture output.
func SetLogger(l *slog.Logger) {
	Logger = l
}
