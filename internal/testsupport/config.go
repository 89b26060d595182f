// Package testsupport provides shared fixtures for engine and store tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"herdscore/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.DataDir = filepath.Join(base, "data")
	cfg.LogDir = filepath.Join(base, "logs")
	cfg.Pose.Endpoint = "http://127.0.0.1:0/predict"
	cfg.Pose.TimeoutSeconds = 1

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMarkerSize overrides the marker's physical size on the test config.
func WithMarkerSize(sizeCm float64) ConfigOption {
	return func(c *config.Config) {
		c.Marker.SizeCm = sizeCm
	}
}

// WithWeights overrides the trait weight table on the test config.
func WithWeights(weights map[string]float64) ConfigOption {
	return func(c *config.Config) {
		c.Scoring.Weights = weights
	}
}
