// Package service binds the watchdog to the host service manager.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	kardianos "github.com/kardianos/service"
	"go.uber.org/zap"

	"github.com/imaniceman/dwm-monitor/internal/config"
	"github.com/imaniceman/dwm-monitor/internal/infra"
	"github.com/imaniceman/dwm-monitor/internal/monitor"
)

const (
	// Name is the registered host service name.
	Name        = "DWMMonitorService"
	displayName = "DWM Monitor Service"
	description = "Restarts dwm.exe when it disappears or exceeds its memory budget."
)

// Program implements kardianos service.Interface. Start bootstraps logging,
// configuration, and the monitor loop; Stop exits the process immediately.
type Program struct {
	logger *zap.Logger
	cancel context.CancelFunc
}

// New builds the host service handle around a fresh Program.
func New() (kardianos.Service, error) {
	cfg := &kardianos.Config{
		Name:        Name,
		DisplayName: displayName,
		Description: description,
		Arguments:   []string{"run"},
	}
	return kardianos.New(&Program{}, cfg)
}

// Start is called by the service manager. Any error here aborts startup:
// without valid config and durable logging the watchdog cannot operate.
func (p *Program) Start(s kardianos.Service) error {
	logPath, err := infra.ExecDirPath(infra.LogFileName)
	if err != nil {
		return err
	}
	logger, err := infra.NewRollingLogger(logPath)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	p.logger = logger
	logger.Info("DWM monitor service starting")

	cfgPath, err := infra.ExecDirPath(config.FileName)
	if err != nil {
		logger.Error("failed to resolve config path", zap.Error(err))
		return err
	}
	threshold, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("failed to load configuration", zap.Error(err))
		return err
	}
	logger.Info("memory threshold loaded", zap.Uint64("threshold_mb", threshold/1024/1024))

	inspector := infra.NewProcessInspector()
	terminator := infra.NewProcessTerminator()

	monCfg := monitor.DefaultConfig()
	monCfg.ThresholdBytes = threshold

	recoverer := monitor.NewRecovery(
		monitor.DefaultRecoveryConfig(), inspector, terminator, monCfg.Target, logger)
	mon := monitor.New(monCfg, inspector, recoverer, logger)

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	// Start must not block; the monitor loop runs for the life of the service.
	go func() {
		if err := mon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("monitor loop exited", zap.Error(err))
		}
	}()

	return nil
}

// Stop handles the host's stop control event: the process exits immediately
// and unconditionally. An in-flight recovery is abandoned, not drained.
func (p *Program) Stop(s kardianos.Service) error {
	if p.logger != nil {
		p.logger.Info("service stop requested, exiting")
		_ = p.logger.Sync()
	}
	os.Exit(0)
	return nil
}

// Run hands control to the service manager (or runs in the foreground when
// launched interactively).
func Run() error {
	s, err := New()
	if err != nil {
		return err
	}
	return s.Run()
}

// Control forwards an action (install, uninstall, start, stop) to the host
// service manager.
func Control(action string) error {
	s, err := New()
	if err != nil {
		return err
	}
	return kardianos.Control(s, action)
}
