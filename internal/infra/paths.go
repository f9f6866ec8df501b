package infra

import (
	"fmt"
	"os"
	"path/filepath"
)

// ExecDirPath returns the path of name placed next to the running
// executable. Both the config file and the log file are colocated with the
// binary rather than a system directory.
func ExecDirPath(name string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), name), nil
}
