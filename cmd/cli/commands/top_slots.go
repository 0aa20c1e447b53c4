package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/pkg/core/services"
)

// TopSlotsCmd creates the topSlots command
func TopSlotsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topSlots <group_code>",
		Short: "Show the best slots of a group, best first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topN, err := topNFlag(cmd, app.Cfg.DefaultTopN)
			if err != nil {
				return err
			}

			result, err := services.TopSlots(app.Ctx, app.Database, app.Logger, args[0], app.Templates, topN)
			if err != nil {
				return err
			}

			fmt.Printf("\nTop %d slots for %s:\n\n", len(result.Slots), result.Group.Name)
			printSlots(result.Slots)
			return nil
		},
	}

	cmd.Flags().IntP("top", "n", 0, "Number of slots to show (default from config)")

	return cmd
}
