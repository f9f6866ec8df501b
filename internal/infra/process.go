// Package infra implements infrastructure concerns (process table, logging, paths).
package infra

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/imaniceman/dwm-monitor/internal/domain"
)

// ProcessInspectorImpl implements domain.ProcessInspector using gopsutil.
type ProcessInspectorImpl struct{}

// NewProcessInspector creates a new process inspector.
func NewProcessInspector() domain.ProcessInspector {
	return &ProcessInspectorImpl{}
}

// FindTarget returns the first running process whose image name matches
// (exact, case-insensitive), or nil if no process matches.
func (pi *ProcessInspectorImpl) FindTarget(imageName string) (*domain.TargetProcess, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue // Process may have exited or be unqueryable
		}
		if strings.EqualFold(name, imageName) {
			return &domain.TargetProcess{PID: p.Pid, Name: name}, nil
		}
	}

	return nil, nil
}

// MemoryUsage returns the resident memory footprint of pid in bytes.
func (pi *ProcessInspectorImpl) MemoryUsage(pid int32) (uint64, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return 0, fmt.Errorf("open process %d: %w", pid, err)
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return 0, fmt.Errorf("query memory of process %d: %w", pid, err)
	}
	return info.RSS, nil
}

// ProcessTerminatorImpl implements domain.ProcessTerminator using gopsutil.
type ProcessTerminatorImpl struct{}

// NewProcessTerminator creates a new process terminator.
func NewProcessTerminator() domain.ProcessTerminator {
	return &ProcessTerminatorImpl{}
}

// TerminateAll forcefully kills every process matching imageName.
// Matching no process is not an error; per-pid kill failures are collected.
func (pt *ProcessTerminatorImpl) TerminateAll(imageName string) error {
	procs, err := process.Processes()
	if err != nil {
		return fmt.Errorf("enumerate processes: %w", err)
	}

	var errs []error
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if !strings.EqualFold(name, imageName) {
			continue
		}
		if err := p.Kill(); err != nil {
			errs = append(errs, fmt.Errorf("kill pid %d: %w", p.Pid, err))
		}
	}

	return errors.Join(errs...)
}

// Ensure implementations satisfy the domain interfaces.
var (
	_ domain.ProcessInspector  = (*ProcessInspectorImpl)(nil)
	_ domain.ProcessTerminator = (*ProcessTerminatorImpl)(nil)
)
