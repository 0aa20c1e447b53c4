package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/pkg/core/services"
)

// MeetingWindowsCmd creates the meetingWindows command
func MeetingWindowsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meetingWindows <group_code>",
		Short: "Show contiguous runs of slots long enough to meet in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minDuration, err := cmd.Flags().GetInt("min-duration")
			if err != nil {
				return err
			}
			topN, err := topNFlag(cmd, app.Cfg.DefaultTopN)
			if err != nil {
				return err
			}

			result, err := services.GroupMeetingWindows(app.Ctx, app.Database, app.Logger, args[0], app.Templates, minDuration, topN)
			if err != nil {
				return err
			}

			fmt.Printf("\nMeeting windows of at least %d min for %s:\n\n", minDuration, result.Group.Name)
			printSlots(result.Slots)
			return nil
		},
	}

	cmd.Flags().Int("min-duration", 60, "Shortest window to report in minutes")
	cmd.Flags().IntP("top", "n", 0, "Number of windows to show (default from config)")

	return cmd
}
