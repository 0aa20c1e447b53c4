package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/group-planner/internal/config"
	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/recurrence"
	"github.com/jakechorley/group-planner/pkg/core/timeutil"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// TemplatesFromConfig converts the configured recurring blocks into expansion templates
func TemplatesFromConfig(cfg *config.Config) ([]recurrence.Template, error) {
	templates := make([]recurrence.Template, 0, len(cfg.RecurringBlocks))
	for i, rb := range cfg.RecurringBlocks {
		start, end, err := rb.Minutes()
		if err != nil {
			return nil, fmt.Errorf("recurringBlocks[%d]: %w", i, err)
		}
		templates = append(templates, recurrence.Template{
			GroupCode: rb.GroupCode,
			UserID:    rb.UserID,
			Kind:      rb.BlockKind(),
			RRule:     rb.RRule,
			StartMin:  start,
			EndMin:    end,
		})
	}
	return templates, nil
}

// topNFlag returns the --top flag when it was set, otherwise fallback
func topNFlag(cmd *cobra.Command, fallback int) (int, error) {
	if !cmd.Flags().Changed("top") {
		return fallback, nil
	}
	topN, err := cmd.Flags().GetInt("top")
	if err != nil {
		return 0, fmt.Errorf("failed to read --top: %w", err)
	}
	return topN, nil
}

func slotColorCode(c model.SlotColor) string {
	switch c {
	case model.ColorGreen:
		return colorGreen
	case model.ColorYellow:
		return colorYellow
	default:
		return colorRed
	}
}

// formatRange renders a block's interval as "HH:MM-HH:MM"
func formatRange(startMin, endMin int) string {
	return timeutil.MustClock(startMin) + "-" + timeutil.MustClock(endMin)
}

// formatSlot renders one computed slot as a single uncolored line
func formatSlot(slot model.ComputedSlot) string {
	line := fmt.Sprintf("%s %s  %-11s %-6s %3.0f%%",
		slot.Date.String(),
		timeutil.Weekday(slot.Date).String()[:3],
		formatRange(slot.StartMin, slot.EndMin),
		slot.Color,
		slot.PctAvailable*100,
	)
	if slot.PreferredCount > 0 {
		line += fmt.Sprintf("  %d preferred", slot.PreferredCount)
	}
	if len(slot.AvailableMembers) > 0 {
		line += "  [" + strings.Join(slot.AvailableMembers, ", ") + "]"
	}
	return line
}

func printSlots(slots []model.ComputedSlot) {
	if len(slots) == 0 {
		fmt.Println("No slots.")
		return
	}
	for _, slot := range slots {
		fmt.Printf("%s%s%s\n", slotColorCode(slot.Color), formatSlot(slot), colorReset)
	}
}

// formatShift renders a detected shift with its confidence
func formatShift(shift model.DetectedShift) string {
	line := fmt.Sprintf("%s  %s", shift.Date.String(), formatRange(shift.StartMin, shift.EndMin))
	if shift.CrossesMidnight {
		line += " (+1)"
	}
	return fmt.Sprintf("%s  confidence %.1f", line, shift.Confidence)
}

// formatIssue renders a parse issue; issues without a line describe the whole text
func formatIssue(issue model.ParseIssue) string {
	if issue.LineNumber == 0 {
		return issue.Reason
	}
	return fmt.Sprintf("line %d %q: %s", issue.LineNumber, issue.Line, issue.Reason)
}

func formatBlock(b model.AvailabilityBlock) string {
	return fmt.Sprintf("%s  %s  %-11s %-11s %-9s %s",
		b.ID, b.Date.String(), formatRange(b.StartMin, b.EndMin), b.Kind, b.Source, b.UserID)
}

// parseWeekday accepts english day names or their three letter prefix.
// An empty string or "all" means every day and returns nil.
func parseWeekday(s string) (*time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "all" {
		return nil, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("unknown day of week: %q", s)
}
