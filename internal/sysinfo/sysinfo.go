// Package sysinfo captures a best-effort host snapshot for fault records.
package sysinfo

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot describes the host at interception time. Every probed field is
// best effort: a probe that fails leaves its zero value. A fault record
// with missing host data is still a valid fault record.
type Snapshot struct {
	CPUModel      string `json:"cpu_model,omitempty"`
	CPUThreads    int    `json:"cpu_threads,omitempty"`
	RAMTotalBytes uint64 `json:"ram_total_bytes,omitempty"`
	RAMUsedBytes  uint64 `json:"ram_used_bytes,omitempty"`
	Goroutines    int    `json:"goroutines"`
	GoVersion     string `json:"go_version"`
}

// Capture probes the host. It never returns an error and never panics:
// nothing on the fault reporting path may block or fail the error path.
func Capture() Snapshot {
	snap := Snapshot{
		Goroutines: runtime.NumGoroutine(),
		GoVersion:  runtime.Version(),
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		snap.CPUModel = infos[0].ModelName
	}
	if count, err := cpu.Counts(true); err == nil {
		snap.CPUThreads = count
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.RAMTotalBytes = vm.Total
		snap.RAMUsedBytes = vm.Used
	}

	return snap
}
