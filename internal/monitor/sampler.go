// internal/monitor/sampler.go
// Package: monitor
package monitor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/LoboGuardian/ollama-llm-benchmarks/internal/report"
)

const bytesPerGB = 1024 * 1024 * 1024

// processLostStatus marks snapshots taken after the tracked process
// disappeared mid-session.
const processLostStatus = "Process not found (Crashed/Exited)"

// Sampler produces point-in-time CPU/RAM/temperature snapshots for the
// host and, when one was found at construction, the Ollama server
// process. Process discovery runs once per session, not per snapshot;
// once the tracked process is lost the handle is cleared for good and
// sampling continues host-only.
type Sampler struct {
	host   HostStats
	temp   *TemperatureReader
	logger *slog.Logger

	proc ProcessHandle // nil when untracked
	now  func() time.Time
}

// NewSampler discovers the target process via locator and returns a
// Sampler ready to snapshot. Failing to find the process is not an
// error; the sampler degrades to host-only mode with a logged warning.
func NewSampler(locator ProcessLocator, host HostStats, temp *TemperatureReader, pattern string, logger *slog.Logger) *Sampler {
	s := &Sampler{
		host:   host,
		temp:   temp,
		logger: logger,
		now:    time.Now,
	}
	if handle, ok := locator.FindBySubstring(pattern); ok {
		s.proc = handle
		logger.Info("Found Ollama process", "pid", handle.Pid())
	} else {
		logger.Warn("Could not find the Ollama process; monitoring system-wide resources only", "pattern", pattern)
	}
	return s
}

// Tracking reports whether a server process is currently tracked.
func (s *Sampler) Tracking() bool {
	return s.proc != nil
}

// Snapshot captures one resource snapshot. Host CPU/RAM read failures
// are fatal (a broken runtime environment); temperature and process
// stat failures downgrade to absent fields.
func (s *Sampler) Snapshot() (report.ResourceSnapshot, error) {
	cpuPct, err := s.host.CPUPercent()
	if err != nil {
		return report.ResourceSnapshot{}, fmt.Errorf("could not read host CPU: %w", err)
	}
	memUsed, err := s.host.MemoryUsed()
	if err != nil {
		return report.ResourceSnapshot{}, fmt.Errorf("could not read host memory: %w", err)
	}

	snap := report.ResourceSnapshot{
		Timestamp:        float64(s.now().UnixNano()) / 1e9,
		SystemCPUPercent: cpuPct,
		SystemRAMUsedGB:  report.Round2(float64(memUsed) / bytesPerGB),
	}

	if temp, ok := s.temp.Read(); ok {
		snap.SystemTempCelsius = &temp
	}

	if s.proc != nil {
		procCPU, cpuErr := s.proc.CPUPercent()
		rss, memErr := s.proc.MemoryRSS()
		if cpuErr != nil || memErr != nil {
			// Tracking -> Untracked, permanently. A stale handle is
			// never reused; only a fresh discovery scan could
			// re-acquire the process.
			snap.OllamaProcessStatus = processLostStatus
			s.proc = nil
			s.logger.Warn("Ollama process lost; continuing host-only")
		} else {
			rssGB := report.Round2(float64(rss) / bytesPerGB)
			snap.OllamaCPUPercent = &procCPU
			snap.OllamaRAMRSSGB = &rssGB
		}
	}

	return snap, nil
}
