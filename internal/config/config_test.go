package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"herdscore/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, existed, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if existed {
		t.Fatal("file should not exist")
	}
	if cfg.Marker.SizeCm != 10.0 {
		t.Fatalf("expected default marker size, got %v", cfg.Marker.SizeCm)
	}
	if cfg.Keypoints.ConfidenceThreshold != 0.10 {
		t.Fatalf("expected default threshold, got %v", cfg.Keypoints.ConfidenceThreshold)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/tmp/herdscore-test"
log_level = "DEBUG"

[marker]
size_cm = 12.5

[pose]
endpoint = "http://model:5000/predict"
timeout_seconds = 5

[scoring.weights]
height = 0.5
body_length = 0.5
`)
	cfg, resolved, existed, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !existed || resolved != path {
		t.Fatalf("expected %s to be read", path)
	}
	if cfg.Marker.SizeCm != 12.5 {
		t.Fatalf("marker size override lost: %v", cfg.Marker.SizeCm)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level should be normalized, got %q", cfg.LogLevel)
	}
	if cfg.Scoring.Weights["height"] != 0.5 {
		t.Fatalf("weights override lost: %v", cfg.Scoring.Weights)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*config.Config)
		fragment string
	}{
		{"zero marker", func(c *config.Config) { c.Marker.SizeCm = 0 }, "marker.size_cm"},
		{"threshold above one", func(c *config.Config) { c.Keypoints.ConfidenceThreshold = 1.5 }, "confidence_threshold"},
		{"no endpoint", func(c *config.Config) { c.Pose.Endpoint = "" }, "pose.endpoint"},
		{"zero timeout", func(c *config.Config) { c.Pose.TimeoutSeconds = 0 }, "timeout_seconds"},
		{"negative weight", func(c *config.Config) { c.Scoring.Weights = map[string]float64{"height": -1} }, "scoring.weights"},
		{"bad level", func(c *config.Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.DataDir = t.TempDir()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.fragment) {
				t.Fatalf("expected %q in error, got %q", tc.fragment, err.Error())
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[marker]") {
		t.Fatal("sample config should document the marker section")
	}
}
