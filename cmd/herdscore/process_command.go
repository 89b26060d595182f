package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"herdscore/internal/config"
	"herdscore/internal/engine"
	"herdscore/internal/measure"
	"herdscore/internal/record"
	"herdscore/internal/store"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var breed string
	var weight float64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "process <animal-id> <view> <image>",
		Short: "Run the measurement pipeline on an uploaded photo",
		Long: "Process runs marker calibration and landmark detection on the image,\n" +
			"computes measurements and trait scores for side views, and appends the\n" +
			"result to the animal's record.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			animalID := strings.TrimSpace(args[0])
			if animalID == "" {
				return fmt.Errorf("animal id is required")
			}
			viewType, err := record.ParseViewType(args[1])
			if err != nil {
				return err
			}
			imagePath, err := config.ExpandPath(args[2])
			if err != nil {
				return err
			}
			image, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("read image %s: %w", imagePath, err)
			}

			eng, cleanup, err := ctx.buildEngine()
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := eng.ProcessView(cmd.Context(), engine.Request{
				AnimalID: animalID,
				Image:    image,
				ViewType: viewType,
				Breed:    breed,
			})
			if err != nil {
				return err
			}

			var rec *record.AnimalRecord
			if err := ctx.withStore(func(st *store.Store) error {
				rec, err = st.AppendView(cmd.Context(), animalID, breed, weight, view)
				return err
			}); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, rec)
			}
			renderViewResult(cmd, view)
			return nil
		},
	}

	cmd.Flags().StringVar(&breed, "breed", "", "Breed used for trait score lookup")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Animal weight in kg")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full animal record as JSON")
	return cmd
}

func renderViewResult(cmd *cobra.Command, view record.ViewResult) {
	out := cmd.OutOrStdout()

	printField(out, "View", fieldInfo, "%s", view.ViewType)
	markerKind := fieldGood
	if !view.ArucoDetected {
		markerKind = fieldBad
	}
	printField(out, "Marker detected", markerKind, "%s", yesNo(view.ArucoDetected))
	if view.CmPerPx != nil {
		printField(out, "Scale", fieldInfo, "%.4f cm/px", *view.CmPerPx)
	}
	printField(out, "Confidence", fieldInfo, "%.2f", view.Confidence)
	if view.ErrorMessage != nil {
		printField(out, "Error", fieldBad, "%s", *view.ErrorMessage)
	}

	if len(view.Measurements) > 0 {
		rows := make([]table.Row, 0, len(view.Measurements))
		for _, name := range sortedKeys(view.Measurements) {
			score := ""
			if trait, ok := view.TraitScores[measure.TraitFor(name)]; ok {
				score = fmt.Sprintf("%.2f", trait)
			}
			rows = append(rows, table.Row{name, fmt.Sprintf("%.2f", view.Measurements[name]), score})
		}
		printTable(out, table.Row{"Measurement", "Value", "Trait score"}, rows, 2, 3)
	}

	if view.FinalScore != nil {
		printField(out, "Final score", fieldGood, "%.2f", *view.FinalScore)
	}
	printField(out, "Verdict", fieldInfo, "%s", view.Verdict)
	if view.DebugImagePath != nil {
		printField(out, "Overlay", fieldInfo, "%s", *view.DebugImagePath)
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
