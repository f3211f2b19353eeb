// internal/monitor/locator.go
// Package: monitor
package monitor

import (
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// ProcessHandle exposes the per-process stats the sampler needs. The
// gopsutil implementation computes CPU percent in the non-blocking
// since-last-call mode, matching the host-wide sampling convention.
type ProcessHandle interface {
	Pid() int32
	CPUPercent() (float64, error)
	MemoryRSS() (uint64, error)
}

// ProcessLocator finds the inference-server process by a substring of
// its name or command line. Pluggable so tests can supply a fixed
// process table instead of querying the real OS.
type ProcessLocator interface {
	FindBySubstring(pattern string) (ProcessHandle, bool)
}

// HostStats exposes host-wide CPU and memory readings.
type HostStats interface {
	CPUPercent() (float64, error)
	MemoryUsed() (uint64, error)
}

// SystemLocator is the gopsutil-backed ProcessLocator.
type SystemLocator struct{}

// FindBySubstring scans all running processes and returns a handle to
// the first one whose name or full command line contains pattern
// (case-insensitive), excluding this process itself. Enumeration
// errors on individual processes are skipped; processes come and go
// while we scan.
func (SystemLocator) FindBySubstring(pattern string) (ProcessHandle, bool) {
	procs, err := process.Processes()
	if err != nil {
		return nil, false
	}

	pattern = strings.ToLower(pattern)
	self := int32(os.Getpid())

	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		name, err := p.Name()
		if err == nil && strings.Contains(strings.ToLower(name), pattern) {
			return systemHandle{p}, true
		}
		cmdline, err := p.Cmdline()
		if err == nil && strings.Contains(strings.ToLower(cmdline), pattern) {
			return systemHandle{p}, true
		}
	}
	return nil, false
}

type systemHandle struct {
	proc *process.Process
}

func (h systemHandle) Pid() int32 { return h.proc.Pid }

func (h systemHandle) CPUPercent() (float64, error) {
	return h.proc.CPUPercent()
}

func (h systemHandle) MemoryRSS() (uint64, error) {
	info, err := h.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

// SystemHostStats is the gopsutil-backed HostStats.
type SystemHostStats struct{}

// CPUPercent returns the host CPU utilization since the previous call
// (interval 0, non-blocking). The first reading after startup is 0 by
// convention; the pre-request snapshot primes it.
func (SystemHostStats) CPUPercent() (float64, error) {
	vals, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, nil
	}
	return vals[0], nil
}

// MemoryUsed returns host RAM in use, in bytes.
func (SystemHostStats) MemoryUsed() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Used, nil
}
