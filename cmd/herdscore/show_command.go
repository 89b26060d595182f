package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"herdscore/internal/record"
	"herdscore/internal/store"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <animal-id>",
		Short: "Display an animal's record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			animalID := strings.TrimSpace(args[0])

			var rec *record.AnimalRecord
			if err := ctx.withStore(func(st *store.Store) error {
				loaded, err := st.Get(cmd.Context(), animalID)
				if err != nil {
					return err
				}
				rec = loaded
				return nil
			}); err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, rec)
			}
			renderAnimalRecord(cmd, rec)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the record as JSON")
	return cmd
}

func renderAnimalRecord(cmd *cobra.Command, rec *record.AnimalRecord) {
	out := cmd.OutOrStdout()

	printField(out, "Animal", fieldInfo, "%s", rec.AnimalID)
	if rec.Breed != "" {
		printField(out, "Breed", fieldInfo, "%s", rec.Breed)
	}
	if rec.Weight > 0 {
		printField(out, "Weight", fieldInfo, "%.1f kg", rec.Weight)
	}
	if rec.FarmerID != nil {
		printField(out, "Farmer", fieldInfo, "%s", *rec.FarmerID)
	}

	if len(rec.Views) > 0 {
		rows := make([]table.Row, 0, len(rec.Views))
		for _, view := range rec.Views {
			score := "-"
			if view.FinalScore != nil {
				score = fmt.Sprintf("%.2f", *view.FinalScore)
			}
			rows = append(rows, table.Row{
				string(view.ViewType),
				view.UploadedAt.Format(time.RFC3339),
				yesNo(view.ArucoDetected),
				len(view.Keypoints),
				score,
				string(view.Verdict),
			})
		}
		printTable(out, table.Row{"View", "Uploaded", "Marker", "Keypoints", "Score", "Verdict"}, rows, 4, 5)
	}

	if len(rec.Measurements) > 0 {
		rows := make([]table.Row, 0, len(rec.Measurements))
		for _, name := range sortedKeys(rec.Measurements) {
			rows = append(rows, table.Row{name, fmt.Sprintf("%.2f", rec.Measurements[name])})
		}
		printTable(out, table.Row{"Measurement", "Value"}, rows, 2)
	}

	if rec.Score != nil {
		printField(out, "Score", fieldGood, "%.2f", *rec.Score)
	}
	printField(out, "Verdict", fieldInfo, "%s", rec.Verdict)
}
