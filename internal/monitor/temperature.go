// internal/monitor/temperature.go
// Package: monitor
package monitor

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// sensorTimeout bounds the external sensor-tool invocation so a hung
// tool cannot stall the benchmark loop.
const sensorTimeout = 5 * time.Second

// tempPattern matches a signed decimal preceded by '+' and followed by
// the degree-Celsius marker, e.g. "+45.0°C".
var tempPattern = regexp.MustCompile(`\+([0-9]+(?:\.[0-9]+)?)°C`)

// tempLabels are the prioritized sensor labels checked before falling
// back to a full scan. Label naming is not standardized across
// hardware; new formats go here, not in the parsing code.
var tempLabels = []string{
	"Package id",
	"Tdie",
	"Tctl",
	"Core 0",
	"CPU",
	"cpu_thermal",
}

// TemperatureReader extracts a representative CPU temperature from the
// free-form text output of the host's sensor tool (`sensors` from
// lm-sensors). Any failure yields an absent reading, never an error.
type TemperatureReader struct {
	// query runs the sensor tool and returns its stdout. Swappable in
	// tests; the default shells out with a bounded timeout.
	query func() (string, error)
}

// NewTemperatureReader returns a reader backed by the `sensors` tool.
func NewTemperatureReader() *TemperatureReader {
	return &TemperatureReader{query: runSensors}
}

func runSensors() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sensorTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "sensors").Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Read returns the CPU temperature in degrees Celsius, or false when
// the tool is missing, exits non-zero, times out, or its output has no
// parseable reading.
func (r *TemperatureReader) Read() (float64, bool) {
	out, err := r.query()
	if err != nil {
		return 0, false
	}
	return ParseSensorsOutput(out)
}

// ParseSensorsOutput scans sensor-tool text for a CPU temperature.
// Lines carrying a prioritized label win; otherwise the highest
// reading across all lines is returned, on the assumption that the
// hottest reported sensor is most likely the CPU package under load.
func ParseSensorsOutput(out string) (float64, bool) {
	lines := strings.Split(out, "\n")

	for _, label := range tempLabels {
		for _, line := range lines {
			if !strings.Contains(line, label) {
				continue
			}
			if v, ok := extractTemp(line); ok {
				return v, true
			}
		}
	}

	// Fallback: no known label matched this hardware's naming.
	var max float64
	found := false
	for _, line := range lines {
		if v, ok := extractTemp(line); ok {
			if !found || v > max {
				max = v
			}
			found = true
		}
	}
	return max, found
}

func extractTemp(line string) (float64, bool) {
	m := tempPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
