package blocks

import (
	"slices"

	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/timeutil"
)

// SplitMidnight splits a block that crosses midnight into two same-day pieces.
// A block with StartMin < EndMin is returned unchanged as a singleton.
func SplitMidnight(tb model.TimeBlock) []model.TimeBlock {
	if tb.StartMin < tb.EndMin {
		return []model.TimeBlock{tb}
	}

	return []model.TimeBlock{
		{Date: tb.Date, StartMin: tb.StartMin, EndMin: timeutil.MinutesPerDay},
		{Date: timeutil.NextDay(tb.Date), StartMin: 0, EndMin: tb.EndMin},
	}
}

// SplitBlock is SplitMidnight for an owned availability block.
// Every piece keeps the owner, kind, source and ID of the original.
func SplitBlock(b model.AvailabilityBlock) []model.AvailabilityBlock {
	pieces := SplitMidnight(b.TimeBlock)
	result := make([]model.AvailabilityBlock, len(pieces))
	for i, piece := range pieces {
		result[i] = b
		result[i].TimeBlock = piece
	}
	return result
}

// ApplyWorkBuffer returns a copy of a WORK block whose start is moved earlier by
// bufferMin, never before 00:00. Other kinds are returned unchanged.
// The widened block only exists for aggregation and is never stored.
// Crossing blocks must be split first and only the head piece buffered.
func ApplyWorkBuffer(b model.AvailabilityBlock, bufferMin int) model.AvailabilityBlock {
	if b.Kind != model.KindWork {
		return b
	}
	b.StartMin = max(0, b.StartMin-bufferMin)
	return b
}

type partitionKey struct {
	userID string
	kind   model.BlockKind
}

// MergeOverlapping merges overlapping blocks of the same user and kind.
// Midnight-crossing blocks are split first. Intervals that merely touch are kept
// apart. Partitions are emitted in order of first appearance.
func MergeOverlapping(input []model.AvailabilityBlock) []model.AvailabilityBlock {
	if len(input) == 0 {
		return []model.AvailabilityBlock{}
	}

	var order []partitionKey
	partitions := make(map[partitionKey][]model.AvailabilityBlock)
	for _, block := range input {
		key := partitionKey{userID: block.UserID, kind: block.Kind}
		if _, exists := partitions[key]; !exists {
			order = append(order, key)
		}
		partitions[key] = append(partitions[key], SplitBlock(block)...)
	}

	merged := make([]model.AvailabilityBlock, 0, len(input))
	for _, key := range order {
		sorted := partitions[key]
		slices.SortStableFunc(sorted, func(a, b model.AvailabilityBlock) int {
			if c := timeutil.CompareDates(a.Date, b.Date); c != 0 {
				return c
			}
			return a.StartMin - b.StartMin
		})

		current := sorted[0]
		for _, next := range sorted[1:] {
			if current.Date == next.Date &&
				timeutil.Overlaps(current.StartMin, current.EndMin, next.StartMin, next.EndMin) {
				current.EndMin = max(current.EndMin, next.EndMin)
				continue
			}
			merged = append(merged, current)
			current = next
		}
		merged = append(merged, current)
	}

	return merged
}
