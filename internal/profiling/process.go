package profiling

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats samples resource usage of the running process
type ProcessStats struct {
	proc *process.Process
}

func NewProcessStats() (*ProcessStats, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("open process: %w", err)
	}
	return &ProcessStats{proc: proc}, nil
}

// RSSMegabytes returns the resident set size in MB
func (s *ProcessStats) RSSMegabytes() (float64, error) {
	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return float64(mem.RSS) / 1024 / 1024, nil
}

// CPUPercent returns CPU usage since the process started
func (s *ProcessStats) CPUPercent() (float64, error) {
	return s.proc.CPUPercent()
}
