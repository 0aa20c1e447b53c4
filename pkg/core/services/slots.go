package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/group-planner/pkg/core/aggregator"
	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/recurrence"
	"github.com/jakechorley/group-planner/pkg/db"
)

// SlotStore defines the database operations needed to compute a group's slots
type SlotStore interface {
	GroupReader
	GetBlocks(ctx context.Context, groupID string) ([]db.AvailabilityBlock, error)
	GetBlockedWindows(ctx context.Context, groupID string) ([]db.BlockedWindow, error)
}

// SlotsResult holds the slot grid of a group's planning range
type SlotsResult struct {
	Group   model.Group
	Members []model.GroupMember
	Slots   []model.ComputedSlot
}

// ComputeGroupSlots loads a group's members, blocks and blocked windows, adds the
// recurring templates configured for the group and computes the slot grid with the
// group's own settings
func ComputeGroupSlots(ctx context.Context, store SlotStore, logger *zap.Logger, groupCode string, templates []recurrence.Template) (*SlotsResult, error) {
	group, members, err := loadGroup(ctx, store, logger, groupCode)
	if err != nil {
		return nil, err
	}

	blockRecords, err := store.GetBlocks(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks: %w", err)
	}
	availability := make([]model.AvailabilityBlock, 0, len(blockRecords))
	for _, r := range blockRecords {
		b, err := r.ToModel()
		if err != nil {
			return nil, err
		}
		availability = append(availability, b)
	}

	recurring, err := recurrence.Expand(templatesForGroup(templates, group.Code), group.ID, group.PlanningStart, group.PlanningEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to expand recurring blocks: %w", err)
	}
	availability = append(availability, recurring...)

	windowRecords, err := store.GetBlockedWindows(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked windows: %w", err)
	}
	windows := make([]model.BlockedWindow, len(windowRecords))
	for i, w := range windowRecords {
		windows[i] = w.ToModel()
	}

	logger.Debug("Computing slots",
		zap.String("group", group.Code),
		zap.Int("members", len(members)),
		zap.Int("blocks", len(blockRecords)),
		zap.Int("recurring_blocks", len(recurring)),
		zap.Int("blocked_windows", len(windows)))

	cfg := aggregator.NewSlotConfig(members, availability, windows, group.PlanningStart, group.PlanningEnd)
	cfg.BufferBeforeWorkMin = group.BufferBeforeWorkMin
	cfg.SlotSizeMin = group.SlotSizeMin
	cfg.YellowThreshold = group.YellowThreshold

	slots := aggregator.ComputeSlots(cfg)

	logger.Debug("Slots computed", zap.String("group", group.Code), zap.Int("slots", len(slots)))

	return &SlotsResult{Group: group, Members: members, Slots: slots}, nil
}

// TopSlots returns the topN best slots of a group
func TopSlots(ctx context.Context, store SlotStore, logger *zap.Logger, groupCode string, templates []recurrence.Template, topN int) (*SlotsResult, error) {
	result, err := ComputeGroupSlots(ctx, store, logger, groupCode, templates)
	if err != nil {
		return nil, err
	}

	result.Slots = aggregator.RankSlots(result.Slots, topN)
	return result, nil
}

// GroupMeetingWindows coalesces a group's slots into meeting windows of at least
// minDurationMin minutes and returns the topN best
func GroupMeetingWindows(ctx context.Context, store SlotStore, logger *zap.Logger, groupCode string, templates []recurrence.Template, minDurationMin, topN int) (*SlotsResult, error) {
	result, err := ComputeGroupSlots(ctx, store, logger, groupCode, templates)
	if err != nil {
		return nil, err
	}

	windows := aggregator.MeetingWindows(result.Slots, minDurationMin)
	logger.Debug("Meeting windows found",
		zap.String("group", result.Group.Code),
		zap.Int("windows", len(windows)),
		zap.Int("min_duration_min", minDurationMin))

	result.Slots = aggregator.RankSlots(windows, topN)
	return result, nil
}

func templatesForGroup(templates []recurrence.Template, code string) []recurrence.Template {
	var matched []recurrence.Template
	for _, t := range templates {
		if NormalizeGroupCode(t.GroupCode) == code {
			matched = append(matched, t)
		}
	}
	return matched
}
