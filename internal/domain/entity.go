// Package domain contains core watchdog entities and interfaces.
// This is the innermost layer in Clean Architecture - no external dependencies.
package domain

// TargetImageName is the executable image name of the monitored process.
// Fixed per deployment, matched case-insensitively.
const TargetImageName = "dwm.exe"

// MonitorState is the watchdog's own run state. Not persisted; owned
// exclusively by the monitor loop.
type MonitorState string

const (
	// StateScanning: polling the target and evaluating its memory usage.
	StateScanning MonitorState = "scanning"

	// StateRestarting: a violation was detected; termination and
	// confirmation are in progress.
	StateRestarting MonitorState = "restarting"

	// StateAwaitingRestart: the target was not found; waiting for it to
	// reappear.
	StateAwaitingRestart MonitorState = "awaiting_restart"
)

// TargetProcess is a snapshot handle to the monitored OS process, obtained
// fresh on every polling cycle. PIDs are recycled by the OS, so a handle is
// never cached across cycles.
type TargetProcess struct {
	PID  int32
	Name string
}
