package db

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/jakechorley/group-planner/pkg/core/model"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Group represents a database group record
type Group struct {
	ID                  string
	Code                string
	Name                string
	PlanningStart       string
	PlanningEnd         string
	BufferBeforeWorkMin int
	SlotSizeMin         int
	YellowThreshold     float64
}

// GroupMember represents a database group membership record
type GroupMember struct {
	GroupID string
	UserID  string
	Role    string
}

// AvailabilityBlock represents a database availability block record.
// Blocks are always stored split at midnight.
type AvailabilityBlock struct {
	ID       string
	GroupID  string
	UserID   string
	Date     string
	StartMin int
	EndMin   int
	Kind     string
	Source   string
}

// BlockedWindow represents a database blocked window record.
// DayOfWeek is nil for a window that applies every day (0 = Sunday).
type BlockedWindow struct {
	ID        string
	GroupID   string
	DayOfWeek *int
	StartMin  int
	EndMin    int
}

// ToModel converts the record into a domain group
func (g Group) ToModel() (model.Group, error) {
	start, err := civil.ParseDate(g.PlanningStart)
	if err != nil {
		return model.Group{}, fmt.Errorf("invalid planning start for group %s: %w", g.Code, err)
	}
	end, err := civil.ParseDate(g.PlanningEnd)
	if err != nil {
		return model.Group{}, fmt.Errorf("invalid planning end for group %s: %w", g.Code, err)
	}

	return model.Group{
		ID:                  g.ID,
		Code:                g.Code,
		Name:                g.Name,
		PlanningStart:       start,
		PlanningEnd:         end,
		BufferBeforeWorkMin: g.BufferBeforeWorkMin,
		SlotSizeMin:         g.SlotSizeMin,
		YellowThreshold:     g.YellowThreshold,
	}, nil
}

// GroupFromModel converts a domain group into a record
func GroupFromModel(g model.Group) Group {
	return Group{
		ID:                  g.ID,
		Code:                g.Code,
		Name:                g.Name,
		PlanningStart:       g.PlanningStart.String(),
		PlanningEnd:         g.PlanningEnd.String(),
		BufferBeforeWorkMin: g.BufferBeforeWorkMin,
		SlotSizeMin:         g.SlotSizeMin,
		YellowThreshold:     g.YellowThreshold,
	}
}

func (m GroupMember) ToModel() model.GroupMember {
	return model.GroupMember{GroupID: m.GroupID, UserID: m.UserID, Role: model.Role(m.Role)}
}

// ToModel converts the record into a domain block
func (b AvailabilityBlock) ToModel() (model.AvailabilityBlock, error) {
	date, err := civil.ParseDate(b.Date)
	if err != nil {
		return model.AvailabilityBlock{}, fmt.Errorf("invalid date for block %s: %w", b.ID, err)
	}

	return model.AvailabilityBlock{
		ID:      b.ID,
		GroupID: b.GroupID,
		UserID:  b.UserID,
		Kind:    model.BlockKind(b.Kind),
		Source:  model.BlockSource(b.Source),
		TimeBlock: model.TimeBlock{
			Date:     date,
			StartMin: b.StartMin,
			EndMin:   b.EndMin,
		},
	}, nil
}

// BlockFromModel converts a domain block into a record
func BlockFromModel(b model.AvailabilityBlock) AvailabilityBlock {
	return AvailabilityBlock{
		ID:       b.ID,
		GroupID:  b.GroupID,
		UserID:   b.UserID,
		Date:     b.Date.String(),
		StartMin: b.StartMin,
		EndMin:   b.EndMin,
		Kind:     string(b.Kind),
		Source:   string(b.Source),
	}
}

func (w BlockedWindow) ToModel() model.BlockedWindow {
	window := model.BlockedWindow{
		ID:       w.ID,
		GroupID:  w.GroupID,
		StartMin: w.StartMin,
		EndMin:   w.EndMin,
	}
	if w.DayOfWeek != nil {
		day := time.Weekday(*w.DayOfWeek)
		window.DayOfWeek = &day
	}
	return window
}

// BlockedWindowFromModel converts a domain blocked window into a record
func BlockedWindowFromModel(w model.BlockedWindow) BlockedWindow {
	record := BlockedWindow{
		ID:       w.ID,
		GroupID:  w.GroupID,
		StartMin: w.StartMin,
		EndMin:   w.EndMin,
	}
	if w.DayOfWeek != nil {
		day := int(*w.DayOfWeek)
		record.DayOfWeek = &day
	}
	return record
}
