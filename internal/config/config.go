// Package config loads the watchdog configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

const (
	// FileName is the key-value config file, colocated with the executable.
	FileName = "config.cfg"

	keyMemoryThreshold = "memory_threshold"
)

// DefaultMemoryThreshold is used (and persisted) when no config file exists.
const DefaultMemoryThreshold uint64 = 1000 * 1024 * 1024 // 1000 MiB

// Load returns the configured memory threshold in bytes.
//
// If the file does not exist it is created with the default threshold, and
// the default is returned. If the file exists, its value is used verbatim;
// a missing key or malformed value is an error, never a silent default.
// The threshold is immutable for the lifetime of the run: Load is called
// once at startup, there is no hot-reload.
func Load(path string) (uint64, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if werr := Write(path, DefaultMemoryThreshold); werr != nil {
			return 0, fmt.Errorf("create default config: %w", werr)
		}
		return DefaultMemoryThreshold, nil
	} else if err != nil {
		return 0, fmt.Errorf("stat config %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("properties")
	if err := v.ReadInConfig(); err != nil {
		return 0, fmt.Errorf("read config %s: %w", path, err)
	}

	raw := v.GetString(keyMemoryThreshold)
	if raw == "" {
		return 0, fmt.Errorf("config %s: missing key %q", path, keyMemoryThreshold)
	}

	// Strict parse. viper's numeric getters coerce garbage to zero, and a
	// malformed threshold must abort startup, not shrink the budget to 0.
	threshold, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config %s: invalid %s value %q: %w", path, keyMemoryThreshold, raw, err)
	}

	return threshold, nil
}

// Write persists a threshold value in the key-value format Load reads.
func Write(path string, thresholdBytes uint64) error {
	content := fmt.Sprintf("%s = %d\n", keyMemoryThreshold, thresholdBytes)
	return os.WriteFile(path, []byte(content), 0644)
}
