package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"herdscore/internal/record"
	"herdscore/internal/store"
)

func newFinalizeCommand(ctx *commandContext) *cobra.Command {
	var breed string
	var weight float64
	var farmerID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "finalize <animal-id>",
		Short: "Fix an animal's identity fields and refresh its aggregate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			animalID := strings.TrimSpace(args[0])
			if strings.TrimSpace(breed) == "" {
				return fmt.Errorf("--breed is required")
			}

			var rec *record.AnimalRecord
			if err := ctx.withStore(func(st *store.Store) error {
				finalized, err := st.Finalize(cmd.Context(), animalID, breed, weight, farmerID)
				if err != nil {
					return err
				}
				rec = finalized
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

	cmd.Flags().StringVar(&breed, "breed", "", "Final breed")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Final weight in kg")
	cmd.Flags().StringVar(&farmerID, "farmer", "", "Owning farmer identifier")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the record as JSON")
	return cmd
}
