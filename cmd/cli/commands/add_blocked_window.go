package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/pkg/core/services"
)

// AddBlockedWindowCmd creates the addBlockedWindow command
func AddBlockedWindowCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addBlockedWindow <group_code> <start> <end>",
		Short: "Exclude an interval from every slot computation of a group",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dayFlag, err := cmd.Flags().GetString("day")
			if err != nil {
				return err
			}
			day, err := parseWeekday(dayFlag)
			if err != nil {
				return err
			}

			window, err := services.AddBlockedWindow(app.Ctx, app.Database, app.Logger, args[0], services.BlockedWindowParams{
				DayOfWeek: day,
				Start:     args[1],
				End:       args[2],
			})
			if err != nil {
				return err
			}

			scope := "every day"
			if window.DayOfWeek != nil {
				scope = "every " + window.DayOfWeek.String()
			}
			fmt.Printf("✓ Blocked %s %s\n", formatRange(window.StartMin, window.EndMin), scope)
			return nil
		},
	}

	cmd.Flags().String("day", "", "Day of week the window applies to (default every day)")

	return cmd
}
