package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/pkg/core/services"
)

// ListBlocksCmd creates the listBlocks command
func ListBlocksCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listBlocks <group_code> [user_id]",
		Short: "List the stored blocks of a group, optionally for one member",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var userID string
			if len(args) > 1 {
				userID = args[1]
			}

			blocks, err := services.ListBlocks(app.Ctx, app.Database, app.Logger, args[0], userID)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d blocks:\n\n", len(blocks))
			for _, b := range blocks {
				fmt.Printf("- %s\n", formatBlock(b))
			}
			return nil
		},
	}
}
