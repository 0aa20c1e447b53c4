package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/pkg/core/services"
)

// DefineGroupCmd creates the defineGroup command
func DefineGroupCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defineGroup <name> <host_user_id> <planning_start> <planning_end>",
		Short: "Create a group with a planning range (dates as YYYY-MM-DD)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := services.GroupParams{
				Name:                args[0],
				HostUserID:          args[1],
				PlanningStart:       args[2],
				PlanningEnd:         args[3],
				BufferBeforeWorkMin: app.Cfg.DefaultBufferBeforeWorkMin,
				SlotSizeMin:         app.Cfg.DefaultSlotSizeMin,
				YellowThreshold:     app.Cfg.DefaultYellowThreshold,
			}

			var err error
			flags := cmd.Flags()
			if flags.Changed("buffer") {
				if params.BufferBeforeWorkMin, err = flags.GetInt("buffer"); err != nil {
					return err
				}
			}
			if flags.Changed("slot-size") {
				if params.SlotSizeMin, err = flags.GetInt("slot-size"); err != nil {
					return err
				}
			}
			if flags.Changed("threshold") {
				if params.YellowThreshold, err = flags.GetFloat64("threshold"); err != nil {
					return err
				}
			}

			group, err := services.DefineGroup(app.Ctx, app.Database, app.Logger, params)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Group created successfully!\n\n")
			fmt.Printf("Code:           %s\n", group.Code)
			fmt.Printf("Name:           %s\n", group.Name)
			fmt.Printf("Planning range: %s to %s\n", group.PlanningStart, group.PlanningEnd)
			fmt.Printf("Work buffer:    %d min\n", group.BufferBeforeWorkMin)
			fmt.Printf("Slot size:      %d min\n", group.SlotSizeMin)
			fmt.Printf("Yellow from:    %.0f%%\n\n", group.YellowThreshold*100)

			return nil
		},
	}

	cmd.Flags().Int("buffer", 0, "Minutes before work during which a member is unavailable (default from config)")
	cmd.Flags().Int("slot-size", 0, "Slot length in minutes (default from config)")
	cmd.Flags().Float64("threshold", 0, "Fraction of members from which a slot is yellow (default from config)")

	return cmd
}
