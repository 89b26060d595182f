package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"herdscore/internal/config"
	"herdscore/internal/marker"
)

func newMarkerCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "marker <image>",
		Short: "Check fiducial marker detection on a photo",
		Long: "Marker runs only the calibration step: it looks for the fiducial,\n" +
			"reports its pixel dimensions and the derived cm-per-pixel scale.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			imagePath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			image, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image %s: %w", imagePath, err)
			}

			detector := marker.NewDetector(cfg.Marker.SizeCm)
			defer detector.Close()

			cal, err := detector.DetectMarker(cmd.Context(), image)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, cal)
			}

			out := cmd.OutOrStdout()
			kind := fieldGood
			if !cal.Detected {
				kind = fieldBad
			}
			printField(out, "Marker detected", kind, "%s", yesNo(cal.Detected))
			if cal.Detected {
				printField(out, "Width", fieldInfo, "%.1f px", cal.WidthPx)
				printField(out, "Height", fieldInfo, "%.1f px", cal.HeightPx)
				printField(out, "Avg side", fieldInfo, "%.1f px", cal.AvgSidePx)
				printField(out, "Scale", fieldInfo, "%.4f cm/px", cal.ScaleCmPerPx)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the calibration as JSON")
	return cmd
}
