package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/services"
)

// ViewSlotsCmd creates the viewSlots command
func ViewSlotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewSlots <group_code>",
		Short: "Show the availability of every slot in the group's planning range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ComputeGroupSlots(app.Ctx, app.Database, app.Logger, args[0], app.Templates)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s (%s): %d members, %s to %s\n\n",
				result.Group.Name, result.Group.Code, len(result.Members),
				result.Group.PlanningStart, result.Group.PlanningEnd)
			printSlots(result.Slots)

			counts := colorCounts(result.Slots)
			fmt.Printf("\n%s%d green%s, %s%d yellow%s, %s%d red%s\n",
				colorGreen, counts[model.ColorGreen], colorReset,
				colorYellow, counts[model.ColorYellow], colorReset,
				colorRed, counts[model.ColorRed], colorReset)

			return nil
		},
	}
}

func colorCounts(slots []model.ComputedSlot) map[model.SlotColor]int {
	counts := make(map[model.SlotColor]int, 3)
	for _, s := range slots {
		counts[s.Color]++
	}
	return counts
}
