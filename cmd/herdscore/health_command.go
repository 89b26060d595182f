package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"herdscore/internal/services/pose"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the landmark detector service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			client := pose.NewClient(cfg.Pose.Endpoint, time.Duration(cfg.Pose.TimeoutSeconds)*time.Second, logger)

			out := cmd.OutOrStdout()
			if err := client.Health(cmd.Context()); err != nil {
				printField(out, "Pose detector", fieldBad, "%s", err)
				return fmt.Errorf("pose detector unhealthy")
			}
			printField(out, "Pose detector", fieldGood, "healthy at %s", cfg.Pose.Endpoint)
			return nil
		},
	}
}
