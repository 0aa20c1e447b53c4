package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/services"
)

// AddBlockCmd creates the addBlock command
func AddBlockCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addBlock <group_code> <user_id> <kind> <date> <start> <end>",
		Short: "Add a WORK, UNAVAILABLE or PREFERRED block (end before start crosses midnight)",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.AddBlock(app.Ctx, app.Database, app.Logger, args[0], services.BlockParams{
				UserID: args[1],
				Kind:   model.BlockKind(strings.ToUpper(args[2])),
				Date:   args[3],
				Start:  args[4],
				End:    args[5],
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Stored %d block(s):\n", len(result.Blocks))
			for _, b := range result.Blocks {
				fmt.Printf("  %s\n", formatBlock(b))
			}
			return nil
		},
	}
}
