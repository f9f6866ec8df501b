package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/imaniceman/dwm-monitor/internal/domain"
	"github.com/imaniceman/dwm-monitor/internal/policy"
)

// Config holds monitor loop configuration.
type Config struct {
	Target         string        // Image name of the monitored process
	ThresholdBytes uint64        // Memory budget; strict excess triggers recovery
	PollInterval   time.Duration // Sleep between scanning cycles
}

// DefaultConfig returns default monitor configuration. ThresholdBytes is
// filled in by the caller from the loaded configuration.
func DefaultConfig() Config {
	return Config{
		Target:       domain.TargetImageName,
		PollInterval: 60 * time.Second,
	}
}

// Monitor is the top-level watchdog state machine. Each cycle it inspects
// the target and either stays in Scanning, or delegates to the recovery
// orchestrator when the target is absent or over budget.
//
// Single-threaded by design: Run is the only unit of execution, and all
// blocking happens in explicit sleeps.
type Monitor struct {
	config    Config
	inspector domain.ProcessInspector
	recoverer domain.Recoverer
	logger    *zap.Logger
	state     domain.MonitorState
}

// New creates a new monitor in the Scanning state.
func New(
	config Config,
	inspector domain.ProcessInspector,
	recoverer domain.Recoverer,
	logger *zap.Logger,
) *Monitor {
	return &Monitor{
		config:    config,
		inspector: inspector,
		recoverer: recoverer,
		logger:    logger,
		state:     domain.StateScanning,
	}
}

// Run drives the monitor loop. It never terminates on its own; it blocks
// until ctx is canceled (the hosting service's stop path exits the whole
// process without waiting for this to unwind).
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started",
		zap.String("target", m.config.Target),
		zap.Uint64("threshold_mb", m.config.ThresholdBytes/1024/1024),
		zap.Duration("poll_interval", m.config.PollInterval))

	for {
		if err := m.cycle(ctx); err != nil {
			return err
		}
		// The recovery sub-loops run on their own 1-second cadence; only
		// the scanning pass itself is followed by the poll interval.
		if err := sleepCtx(ctx, m.config.PollInterval); err != nil {
			m.logger.Info("monitor stopping")
			return err
		}
	}
}

// cycle runs one Scanning pass, delegating to recovery when needed.
// A non-nil error only ever means ctx was canceled mid-recovery.
func (m *Monitor) cycle(ctx context.Context) error {
	m.state = domain.StateScanning

	target, err := m.inspector.FindTarget(m.config.Target)
	if err != nil {
		// Enumeration failure is transient; no data this cycle, no restart.
		m.logger.Warn("process enumeration failed", zap.Error(err))
		return nil
	}

	if target == nil {
		m.logger.Warn("target process not found, waiting for relaunch",
			zap.String("target", m.config.Target))
		m.state = domain.StateAwaitingRestart
		if err := m.recoverer.WaitForPresence(ctx); err != nil {
			return err
		}
		m.state = domain.StateScanning
		return nil
	}

	usage, err := m.inspector.MemoryUsage(target.PID)
	if err != nil {
		// The target likely exited between discovery and query. Treat the
		// cycle as inconclusive rather than restarting on no data.
		m.logger.Warn("memory query failed, skipping cycle",
			zap.Int32("pid", target.PID),
			zap.Error(err))
		return nil
	}

	m.logger.Info("target memory usage",
		zap.Int32("pid", target.PID),
		zap.Uint64("usage_mb", usage/1024/1024))

	if policy.IsViolation(usage, m.config.ThresholdBytes) {
		m.logger.Warn("memory usage exceeds threshold, restarting target",
			zap.Uint64("usage_bytes", usage),
			zap.Uint64("threshold_bytes", m.config.ThresholdBytes))
		m.state = domain.StateRestarting
		if err := m.recoverer.TerminateAndConfirm(ctx); err != nil {
			return err
		}
		m.state = domain.StateScanning
	}

	return nil
}

// State returns the monitor's current run state.
func (m *Monitor) State() domain.MonitorState {
	return m.state
}
