package aggregator

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/jakechorley/group-planner/pkg/core/blocks"
	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/timeutil"
)

const (
	DefaultBufferBeforeWorkMin = 20
	DefaultSlotSizeMin         = 30
	DefaultYellowThreshold     = 0.75
)

// SlotConfig contains everything needed to compute the slot grid of a planning window
type SlotConfig struct {
	// Members are all required participants; an empty list yields no slots
	Members []model.GroupMember

	// Blocks are the members' availability blocks. Blocks of users that are not
	// members are ignored.
	Blocks []model.AvailabilityBlock

	// BlockedWindows remove slots from the grid entirely
	BlockedWindows []model.BlockedWindow

	// PlanningStart and PlanningEnd bound the closed date range of the grid
	PlanningStart civil.Date
	PlanningEnd   civil.Date

	// BufferBeforeWorkMin widens WORK blocks backwards for aggregation only.
	// Negative values count as zero.
	BufferBeforeWorkMin int

	// SlotSizeMin is the slot length; non-positive values fall back to the default
	SlotSizeMin int

	// YellowThreshold is the minimum availability ratio graded yellow;
	// values outside (0,1] fall back to the default
	YellowThreshold float64
}

// NewSlotConfig returns a SlotConfig with the default buffer, slot size and threshold
func NewSlotConfig(members []model.GroupMember, availability []model.AvailabilityBlock, windows []model.BlockedWindow, start, end civil.Date) SlotConfig {
	return SlotConfig{
		Members:             members,
		Blocks:              availability,
		BlockedWindows:      windows,
		PlanningStart:       start,
		PlanningEnd:         end,
		BufferBeforeWorkMin: DefaultBufferBeforeWorkMin,
		SlotSizeMin:         DefaultSlotSizeMin,
		YellowThreshold:     DefaultYellowThreshold,
	}
}

func (c SlotConfig) slotSize() int {
	if c.SlotSizeMin <= 0 {
		return DefaultSlotSizeMin
	}
	return c.SlotSizeMin
}

func (c SlotConfig) yellowThreshold() float64 {
	if c.YellowThreshold <= 0 || c.YellowThreshold > 1 {
		return DefaultYellowThreshold
	}
	return c.YellowThreshold
}

// memberState is the outcome of a member's blocks for one slot
type memberState int

const (
	stateAvailable memberState = iota
	statePreferred
	stateBusy
)

// blockIndex holds the normalized block pieces of the planning window by date and user
type blockIndex map[civil.Date]map[string][]model.AvailabilityBlock

// ComputeSlots grades every slot of every date in the planning window.
// Slots overlapping a blocked window are left out; every other slot is emitted,
// including slots nobody can attend.
func ComputeSlots(cfg SlotConfig) []model.ComputedSlot {
	if len(cfg.Members) == 0 {
		return []model.ComputedSlot{}
	}

	slotSize := cfg.slotSize()
	threshold := cfg.yellowThreshold()
	index := indexBlocks(cfg)
	dates := timeutil.DatesBetween(cfg.PlanningStart, cfg.PlanningEnd)

	slots := make([]model.ComputedSlot, 0, len(dates)*((timeutil.MinutesPerDay+slotSize-1)/slotSize))

	for _, date := range dates {
		windows := windowsForDate(cfg.BlockedWindows, timeutil.Weekday(date))
		dayBlocks := index[date]

		for start := 0; start < timeutil.MinutesPerDay; start += slotSize {
			end := min(start+slotSize, timeutil.MinutesPerDay)

			if isBlocked(windows, start, end) {
				continue
			}

			available := make([]string, 0, len(cfg.Members))
			preferred := 0
			for _, member := range cfg.Members {
				switch evaluateMember(dayBlocks[member.UserID], start, end) {
				case statePreferred:
					preferred++
					available = append(available, member.UserID)
				case stateAvailable:
					available = append(available, member.UserID)
				}
			}

			pct := float64(len(available)) / float64(len(cfg.Members))

			slots = append(slots, model.ComputedSlot{
				TimeBlock:        model.TimeBlock{Date: date, StartMin: start, EndMin: end},
				PctAvailable:     pct,
				PreferredCount:   preferred,
				Color:            slotColor(len(available), len(cfg.Members), pct, threshold),
				AvailableMembers: available,
			})
		}
	}

	return slots
}

// indexBlocks splits every block at midnight, buffers the first piece of WORK
// blocks and keeps the pieces that land inside the planning window. A piece is
// kept by its own date, so the tail of a block dated the day before the window
// still counts on the first day.
func indexBlocks(cfg SlotConfig) blockIndex {
	buffer := max(0, cfg.BufferBeforeWorkMin)
	index := make(blockIndex)

	for _, block := range cfg.Blocks {
		for i, piece := range blocks.SplitBlock(block) {
			if i == 0 {
				piece = blocks.ApplyWorkBuffer(piece, buffer)
			}
			if !timeutil.InRange(piece.Date, cfg.PlanningStart, cfg.PlanningEnd) {
				continue
			}
			byUser, ok := index[piece.Date]
			if !ok {
				byUser = make(map[string][]model.AvailabilityBlock)
				index[piece.Date] = byUser
			}
			byUser[piece.UserID] = append(byUser[piece.UserID], piece)
		}
	}

	return index
}

// evaluateMember applies the priority rule WORK/UNAVAILABLE > PREFERRED > available.
// The result does not depend on block order.
func evaluateMember(memberBlocks []model.AvailabilityBlock, start, end int) memberState {
	state := stateAvailable
	for _, block := range memberBlocks {
		if !timeutil.Overlaps(start, end, block.StartMin, block.EndMin) {
			continue
		}
		if block.Kind.IsBusy() {
			return stateBusy
		}
		if block.Kind == model.KindPreferred {
			state = statePreferred
		}
	}
	return state
}

// dayWindow is one same-day piece of a blocked window
type dayWindow struct {
	start int
	end   int
}

// windowsForDate selects the blocked window pieces that apply on a weekday.
// A window crossing midnight contributes its head on its own weekday and its
// tail on the following weekday.
func windowsForDate(windows []model.BlockedWindow, day time.Weekday) []dayWindow {
	previous := (day + 6) % 7

	var result []dayWindow
	for _, w := range windows {
		if w.StartMin < w.EndMin {
			if w.AppliesOn(day) {
				result = append(result, dayWindow{start: w.StartMin, end: w.EndMin})
			}
			continue
		}
		if w.AppliesOn(day) {
			result = append(result, dayWindow{start: w.StartMin, end: timeutil.MinutesPerDay})
		}
		if w.AppliesOn(previous) {
			result = append(result, dayWindow{start: 0, end: w.EndMin})
		}
	}
	return result
}

func isBlocked(windows []dayWindow, start, end int) bool {
	for _, w := range windows {
		if timeutil.Overlaps(start, end, w.start, w.end) {
			return true
		}
	}
	return false
}

func slotColor(available, total int, pct, threshold float64) model.SlotColor {
	if available == total {
		return model.ColorGreen
	}
	if pct >= threshold {
		return model.ColorYellow
	}
	return model.ColorRed
}
