package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/pkg/core/services"
)

// AddMemberCmd creates the addMember command
func AddMemberCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addMember <group_code> <user_id>",
		Short: "Add a member to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			member, err := services.AddMember(app.Ctx, app.Database, app.Logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("✓ %s joined the group as %s\n", member.UserID, member.Role)
			return nil
		},
	}
}
