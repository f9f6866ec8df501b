// Package monitor implements the watchdog monitor loop and recovery protocol.
package monitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/imaniceman/dwm-monitor/internal/domain"
)

// RecoveryConfig holds recovery orchestrator timing.
type RecoveryConfig struct {
	GracePeriod   time.Duration // Wait after kill before the first presence check
	RetryInterval time.Duration // Presence re-check cadence while the target is absent
}

// DefaultRecoveryConfig returns default recovery configuration.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{
		GracePeriod:   10 * time.Second,
		RetryInterval: 1 * time.Second,
	}
}

// Recovery terminates the target process and confirms its reappearance.
// The OS supervises this class of critical process, so recovery retries
// without a ceiling: both entry points block until the target is confirmed
// running again.
type Recovery struct {
	config     RecoveryConfig
	inspector  domain.ProcessInspector
	terminator domain.ProcessTerminator
	target     string
	logger     *zap.Logger
}

// NewRecovery creates a new recovery orchestrator for the given image name.
func NewRecovery(
	config RecoveryConfig,
	inspector domain.ProcessInspector,
	terminator domain.ProcessTerminator,
	target string,
	logger *zap.Logger,
) *Recovery {
	return &Recovery{
		config:     config,
		inspector:  inspector,
		terminator: terminator,
		target:     target,
		logger:     logger,
	}
}

// TerminateAndConfirm kills every process matching the target image name,
// waits the grace period for the OS to relaunch it, then retries presence
// checks until it reappears.
func (r *Recovery) TerminateAndConfirm(ctx context.Context) error {
	r.logger.Info("restarting target process", zap.String("target", r.target))

	// A failed kill does not abort recovery: the process may already be
	// gone, or the OS may relaunch it regardless.
	if err := r.terminator.TerminateAll(r.target); err != nil {
		r.logger.Error("failed to terminate target process",
			zap.String("target", r.target),
			zap.Error(err))
	} else {
		r.logger.Info("termination issued", zap.String("target", r.target))
	}

	r.logger.Info("waiting for the system to relaunch target",
		zap.String("target", r.target),
		zap.Duration("grace_period", r.config.GracePeriod))
	if err := sleepCtx(ctx, r.config.GracePeriod); err != nil {
		return err
	}

	if r.present() {
		r.logger.Info("target process relaunched", zap.String("target", r.target))
		return nil
	}

	r.logger.Warn("target did not relaunch within grace period, retrying",
		zap.String("target", r.target))
	return r.awaitPresence(ctx)
}

// WaitForPresence blocks until the target process is running. Used when the
// target was never found rather than found-and-violating.
func (r *Recovery) WaitForPresence(ctx context.Context) error {
	return r.awaitPresence(ctx)
}

// awaitPresence re-checks presence every RetryInterval, without a retry
// ceiling, until the target appears.
func (r *Recovery) awaitPresence(ctx context.Context) error {
	for {
		if r.present() {
			r.logger.Info("target process is running", zap.String("target", r.target))
			return nil
		}
		if err := sleepCtx(ctx, r.config.RetryInterval); err != nil {
			return err
		}
	}
}

// present reports whether the target is currently in the process table.
// An enumeration failure counts as absent for this check.
func (r *Recovery) present() bool {
	proc, err := r.inspector.FindTarget(r.target)
	if err != nil {
		r.logger.Warn("presence check failed", zap.Error(err))
		return false
	}
	return proc != nil
}

// sleepCtx sleeps for d or returns early with ctx.Err() on cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Ensure Recovery implements domain.Recoverer.
var _ domain.Recoverer = (*Recovery)(nil)
