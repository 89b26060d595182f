// Package config loads and validates the engine configuration from TOML.
// Every tunable the engine depends on lives here: marker physical size,
// keypoint confidence threshold, trait weights, detector endpoint and
// timeout, and the data/log directories.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "HERDSCORE_CONFIG"

// Marker configures the fiducial used for scale calibration.
type Marker struct {
	SizeCm float64 `toml:"size_cm"`
}

// Keypoints configures landmark handling.
type Keypoints struct {
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
}

// Pose configures the remote landmark detector.
type Pose struct {
	Endpoint       string `toml:"endpoint"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Scoring configures the final-score weight table. An empty map keeps the
// built-in defaults.
type Scoring struct {
	Weights map[string]float64 `toml:"weights"`
}

// Overlay configures debug overlay rendering.
type Overlay struct {
	Enabled bool `toml:"enabled"`
}

// Config is the root configuration document.
type Config struct {
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	Marker    Marker    `toml:"marker"`
	Keypoints Keypoints `toml:"keypoints"`
	Pose      Pose      `toml:"pose"`
	Scoring   Scoring   `toml:"scoring"`
	Overlay   Overlay   `toml:"overlay"`
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "herdscore", "config.toml"), nil
}

// Load reads configuration from path (or the env override, or the default
// location), applies defaults for unset fields, and validates the result.
// It returns the resolved path and whether a file was actually read; a
// missing file yields the defaults rather than an error.
func Load(path string) (*Config, string, bool, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := cfg.normalize(); err != nil {
			return nil, resolved, false, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, resolved, false, err
		}
		return &cfg, resolved, false, nil
	case err != nil:
		return nil, resolved, false, fmt.Errorf("read config %s: %w", resolved, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, resolved, true, fmt.Errorf("parse config %s: %w", resolved, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, resolved, true, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolved, true, err
	}
	return &cfg, resolved, true, nil
}

// WriteSample writes the embedded sample config to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.DataDir, c.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure directory %s: %w", dir, err)
		}
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return "", err
		}
	}
	return ExpandPath(path)
}

func (c *Config) normalize() error {
	var err error
	if c.DataDir, err = ExpandPath(c.DataDir); err != nil {
		return err
	}
	if c.LogDir, err = ExpandPath(c.LogDir); err != nil {
		return err
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.Pose.Endpoint = strings.TrimSpace(c.Pose.Endpoint)
	return nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
