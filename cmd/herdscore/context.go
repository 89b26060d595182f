package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"herdscore/internal/config"
	"herdscore/internal/engine"
	"herdscore/internal/logging"
	"herdscore/internal/marker"
	"herdscore/internal/overlay"
	"herdscore/internal/services/pose"
	"herdscore/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// withStore opens the record store for the duration of fn.
func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// buildEngine wires the marker and landmark detectors from config. The
// returned cleanup releases the marker detector's native resources.
func (c *commandContext) buildEngine() (*engine.Engine, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	markers := marker.NewDetector(cfg.Marker.SizeCm)
	landmarks := pose.NewClient(cfg.Pose.Endpoint, time.Duration(cfg.Pose.TimeoutSeconds)*time.Second, logger)

	var renderer engine.OverlayRenderer
	if cfg.Overlay.Enabled {
		renderer = overlay.Writer{Dir: cfg.DataDir}
	}

	eng := engine.New(markers, landmarks, engine.Options{
		ConfidenceThreshold: cfg.Keypoints.ConfidenceThreshold,
		Weights:             cfg.Scoring.Weights,
		Overlay:             renderer,
		Logger:              logger,
	})
	cleanup := func() { _ = markers.Close() }
	return eng, cleanup, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
