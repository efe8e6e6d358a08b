// Package config provides environment configuration helpers for the
// assistance engine commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for command-line tools.
const (
	DefaultDashboardPort = "8090"
	DefaultLogLevel      = "info"
)

// PerceptionURL returns the perception service base URL from PERCEPTION_URL.
// Falls back to the provided default if not set.
func PerceptionURL(defaultURL string) string {
	if url := os.Getenv("PERCEPTION_URL"); url != "" {
		return url
	}
	return defaultURL
}

// PerceptionStreamURL returns the websocket detection stream URL from
// PERCEPTION_STREAM_URL, or "" if the service does not push events.
func PerceptionStreamURL() string {
	return os.Getenv("PERCEPTION_STREAM_URL")
}

// DashboardPort returns the dashboard port from DASHBOARD_PORT or default.
func DashboardPort() string {
	if port := os.Getenv("DASHBOARD_PORT"); port != "" {
		return port
	}
	return DefaultDashboardPort
}

// LogLevel returns the log level from LOG_LEVEL or default.
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return DefaultLogLevel
}

// FaceModelPath returns the ONNX face model path from FACE_MODEL, or "" when
// local detection should be disabled.
func FaceModelPath() string {
	return os.Getenv("FACE_MODEL")
}

// EnvFloat reads a float64 env var, falling back to def when unset or invalid.
func EnvFloat(key string, def float64) float64 {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return def
}
