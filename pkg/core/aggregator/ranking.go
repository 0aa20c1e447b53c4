package aggregator

import (
	"cmp"
	"slices"

	"github.com/jakechorley/group-planner/pkg/core/model"
)

// RankSlots returns the best topN slots ordered by color, then preferred count,
// then availability ratio. Equal slots keep their relative input order.
// The input slice is not modified.
func RankSlots(slots []model.ComputedSlot, topN int) []model.ComputedSlot {
	if topN <= 0 {
		return []model.ComputedSlot{}
	}

	sorted := slices.Clone(slots)
	slices.SortStableFunc(sorted, compareSlots)

	if topN < len(sorted) {
		sorted = sorted[:topN]
	}
	return sorted
}

// compareSlots orders better slots first
func compareSlots(a, b model.ComputedSlot) int {
	if c := cmp.Compare(b.Color.Rank(), a.Color.Rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.PreferredCount, a.PreferredCount); c != 0 {
		return c
	}
	return cmp.Compare(b.PctAvailable, a.PctAvailable)
}

// MeetingWindows coalesces consecutive slots of the same date that have exactly the
// same available members and preferred count into longer windows, keeping windows
// of at least minDurationMin minutes. Slots are expected in ComputeSlots order.
func MeetingWindows(slots []model.ComputedSlot, minDurationMin int) []model.ComputedSlot {
	var windows []model.ComputedSlot

	var current *model.ComputedSlot
	flush := func() {
		if current != nil && current.Duration() >= minDurationMin {
			windows = append(windows, *current)
		}
		current = nil
	}

	for _, slot := range slots {
		if current != nil &&
			current.Date == slot.Date &&
			current.EndMin == slot.StartMin &&
			current.PreferredCount == slot.PreferredCount &&
			slices.Equal(current.AvailableMembers, slot.AvailableMembers) {
			current.EndMin = slot.EndMin
			continue
		}

		flush()
		next := slot
		next.AvailableMembers = slices.Clone(slot.AvailableMembers)
		current = &next
	}
	flush()

	if windows == nil {
		return []model.ComputedSlot{}
	}
	return windows
}
