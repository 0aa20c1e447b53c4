package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/pkg/core/services"
)

// ParseScheduleCmd creates the parseSchedule command
func ParseScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "parseSchedule <group_code> [file]",
		Short: "Detect work shifts in recognized schedule text (reads stdin without a file)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readScheduleText(args[1:])
			if err != nil {
				return err
			}

			result, err := services.ParseSchedule(app.Ctx, app.Database, app.Logger, args[0], text)
			if err != nil {
				return err
			}

			fmt.Printf("\nDetected %d shifts:\n", len(result.Shifts))
			for _, s := range result.Shifts {
				fmt.Printf("  %s\n", formatShift(s))
			}

			if len(result.Issues) > 0 {
				fmt.Printf("\n%s%d issues:%s\n", colorYellow, len(result.Issues), colorReset)
				for _, issue := range result.Issues {
					fmt.Printf("  %s\n", formatIssue(issue))
				}
			}
			fmt.Println()

			return nil
		},
	}
}

// readScheduleText reads the file named by the first arg, or stdin when there is none
func readScheduleText(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read schedule file: %w", err)
	}
	return string(data), nil
}
