// internal/report/persist.go
// Package: report
package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// Write persists the report as indented JSON at path, overwriting any
// existing file.
func (r Report) Write(path string) error {
	b, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("could not encode report: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("could not write report to %s: %w", path, err)
	}
	return nil
}

// Load reads a previously persisted report. Missing files and malformed
// JSON are both errors; the analysis path treats them as fatal.
func Load(path string) (Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("could not read report file %s: %w", path, err)
	}
	var rep Report
	if err := json.Unmarshal(b, &rep); err != nil {
		return Report{}, fmt.Errorf("could not decode report JSON from %s (check file integrity): %w", path, err)
	}
	return rep, nil
}
