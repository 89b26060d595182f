package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMarker(); err != nil {
		return err
	}
	if err := c.validateKeypoints(); err != nil {
		return err
	}
	if err := c.validatePose(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.DataDir == "" {
		return errors.New("data_dir must be set")
	}
	return nil
}

func (c *Config) validateMarker() error {
	if c.Marker.SizeCm <= 0 {
		return fmt.Errorf("marker.size_cm must be positive, got %v", c.Marker.SizeCm)
	}
	return nil
}

func (c *Config) validateKeypoints() error {
	t := c.Keypoints.ConfidenceThreshold
	if t < 0 || t > 1 {
		return fmt.Errorf("keypoints.confidence_threshold must be in [0,1], got %v", t)
	}
	return nil
}

func (c *Config) validatePose() error {
	if c.Pose.Endpoint == "" {
		return errors.New("pose.endpoint must be set")
	}
	if c.Pose.TimeoutSeconds <= 0 {
		return fmt.Errorf("pose.timeout_seconds must be positive, got %d", c.Pose.TimeoutSeconds)
	}
	return nil
}

func (c *Config) validateScoring() error {
	if len(c.Scoring.Weights) == 0 {
		return nil
	}
	var total float64
	for trait, weight := range c.Scoring.Weights {
		if weight < 0 {
			return fmt.Errorf("scoring.weights.%s must not be negative", trait)
		}
		total += weight
	}
	if total <= 0 {
		return errors.New("scoring.weights must include at least one positive weight")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unsupported value %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}
	return nil
}
