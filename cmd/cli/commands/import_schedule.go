package commands

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/group-planner/pkg/core/services"
)

// ImportScheduleCmd creates the importSchedule command
func ImportScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "importSchedule <group_code> <user_id> [file]",
		Short: "Detect work shifts in schedule text and store them as WORK blocks",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return err
			}
			groupCode, userID := args[0], args[1]

			text, err := readScheduleText(args[2:])
			if err != nil {
				return err
			}

			parsed, err := services.ParseSchedule(app.Ctx, app.Database, app.Logger, groupCode, text)
			if err != nil {
				return err
			}
			for _, issue := range parsed.Issues {
				fmt.Printf("%s! %s%s\n", colorDim, formatIssue(issue), colorReset)
			}

			results, err := services.ImportShifts(app.Ctx, app.Database, app.Logger, groupCode, userID, parsed.Shifts,
				services.ImportOptions{Today: civil.DateOf(time.Now()), DryRun: dryRun})
			if err != nil {
				return err
			}

			imported := 0
			for _, r := range results {
				if r.Err != nil {
					fmt.Printf("  %s✗ %s: %v%s\n", colorRed, formatShift(r.Shift), r.Err, colorReset)
					continue
				}
				imported++
				fmt.Printf("  %s✓ %s%s\n", colorGreen, formatShift(r.Shift), colorReset)
			}

			app.Logger.Debug("importSchedule finished",
				zap.Int("imported", imported),
				zap.Int("rejected", len(results)-imported),
				zap.Bool("dry_run", dryRun))

			if dryRun {
				fmt.Printf("\nDRY RUN: %d of %d shifts would be imported\n", imported, len(results))
			} else {
				fmt.Printf("\n✓ Imported %d of %d shifts\n", imported, len(results))
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Validate shifts without storing them")

	return cmd
}
