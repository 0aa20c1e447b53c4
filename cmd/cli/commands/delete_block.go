package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/pkg/core/services"
)

// DeleteBlockCmd creates the deleteBlock command
func DeleteBlockCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteBlock <group_code> <block_id>",
		Short: "Delete an availability block",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteBlock(app.Ctx, app.Database, app.Logger, args[0], args[1]); err != nil {
				return err
			}

			fmt.Printf("✓ Deleted block %s\n", args[1])
			return nil
		},
	}
}
