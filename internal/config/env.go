// Package config provides environment defaults for go-arena commands.
package config

import "os"

// Defaults used when no environment override is set.
const (
	DefaultOutputDir = "."
	DefaultLogLevel  = "info"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OutputDir returns the output directory from ARENA_OUTPUT_DIR.
// Falls back to the current directory if not set.
func OutputDir() string {
	return env("ARENA_OUTPUT_DIR", DefaultOutputDir)
}

// LogLevel returns the log level from ARENA_LOG_LEVEL or default.
func LogLevel() string {
	return env("ARENA_LOG_LEVEL", DefaultLogLevel)
}

// MonitorAddr returns the live monitor listen address from ARENA_MONITOR_ADDR.
// Empty disables the monitor.
func MonitorAddr() string {
	return os.Getenv("ARENA_MONITOR_ADDR")
}

// DBPath returns the SQLite record store path from ARENA_DB.
// Empty disables the store.
func DBPath() string {
	return os.Getenv("ARENA_DB")
}
