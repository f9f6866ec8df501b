package domain

import "context"

// ProcessInspector reads the OS process table.
// Implementation: uses gopsutil for cross-platform support.
type ProcessInspector interface {
	// FindTarget enumerates running processes and returns the first one
	// whose image name matches (exact, case-insensitive), or nil if none.
	// Processes that cannot be queried are skipped, not treated as errors.
	FindTarget(imageName string) (*TargetProcess, error)

	// MemoryUsage returns the resident memory footprint of pid in bytes.
	// An error means the query failed (process exited, permission denied);
	// callers treat that cycle as inconclusive rather than fatal.
	MemoryUsage(pid int32) (uint64, error)
}

// ProcessTerminator forcefully terminates processes by image name.
type ProcessTerminator interface {
	// TerminateAll kills every process matching imageName, not just a
	// specific pid, since the sampled instance may already have been
	// replaced. Finding no match is not an error.
	TerminateAll(imageName string) error
}

// Recoverer runs the restart/confirmation protocol after a violation or
// target disappearance. Both calls block until the target is confirmed
// running again (or ctx is canceled).
type Recoverer interface {
	// TerminateAndConfirm kills the target, waits a grace period for the
	// OS to relaunch it, then retries presence checks until it reappears.
	TerminateAndConfirm(ctx context.Context) error

	// WaitForPresence retries presence checks until the target appears.
	WaitForPresence(ctx context.Context) error
}
