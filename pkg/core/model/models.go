package model

import (
	"time"

	"cloud.google.com/go/civil"
)

// BlockKind classifies an availability block
type BlockKind string

const (
	KindWork        BlockKind = "WORK"
	KindUnavailable BlockKind = "UNAVAILABLE"
	KindPreferred   BlockKind = "PREFERRED"
)

func (k BlockKind) IsValid() bool {
	return k == KindWork || k == KindUnavailable || k == KindPreferred
}

// IsBusy reports whether a block of this kind makes its owner unavailable
func (k BlockKind) IsBusy() bool {
	return k == KindWork || k == KindUnavailable
}

// BlockSource records how a block was created
type BlockSource string

const (
	SourceManual    BlockSource = "MANUAL"
	SourceOCR       BlockSource = "OCR"
	SourceRecurring BlockSource = "RECURRING"
)

type Role string

const (
	RoleHost   Role = "host"
	RoleMember Role = "member"
)

func (r Role) IsValid() bool {
	return r == RoleHost || r == RoleMember
}

// TimeBlock is a dated interval in minutes from midnight, both ends in [0,1440].
// A block with StartMin >= EndMin crosses midnight.
type TimeBlock struct {
	Date     civil.Date
	StartMin int
	EndMin   int
}

// CrossesMidnight reports whether the block must be split before interval checks
func (tb TimeBlock) CrossesMidnight() bool {
	return tb.StartMin >= tb.EndMin
}

// Duration returns the span of a non-crossing block in minutes
func (tb TimeBlock) Duration() int {
	return tb.EndMin - tb.StartMin
}

// AvailabilityBlock is a time block owned by exactly one group member
type AvailabilityBlock struct {
	TimeBlock
	ID      string
	GroupID string
	UserID  string
	Kind    BlockKind
	Source  BlockSource
}

// BlockedWindow is a group-wide exclusion interval.
// A nil DayOfWeek applies the window to every day of the week.
type BlockedWindow struct {
	ID        string
	GroupID   string
	DayOfWeek *time.Weekday
	StartMin  int
	EndMin    int
}

// AppliesOn reports whether the window is scoped to the given weekday
func (bw BlockedWindow) AppliesOn(day time.Weekday) bool {
	return bw.DayOfWeek == nil || *bw.DayOfWeek == day
}

// GroupMember is a membership fact; every member is a required participant
type GroupMember struct {
	GroupID string
	UserID  string
	Role    Role
}

// Group holds the scheduling settings of a group
type Group struct {
	ID                  string
	Code                string
	Name                string
	PlanningStart       civil.Date
	PlanningEnd         civil.Date
	BufferBeforeWorkMin int
	SlotSizeMin         int
	YellowThreshold     float64
}

// SlotColor grades a slot's availability
type SlotColor string

const (
	ColorGreen  SlotColor = "green"
	ColorYellow SlotColor = "yellow"
	ColorRed    SlotColor = "red"
)

// Rank orders colors for ranking: green > yellow > red
func (c SlotColor) Rank() int {
	switch c {
	case ColorGreen:
		return 3
	case ColorYellow:
		return 2
	case ColorRed:
		return 1
	}
	return 0
}

// ComputedSlot is a derived, never persisted, availability grade for one slot
type ComputedSlot struct {
	TimeBlock
	PctAvailable     float64
	PreferredCount   int
	Color            SlotColor
	AvailableMembers []string
}

// DetectedShift is a shift candidate extracted from recognized schedule text.
// It has not been validated against business rules yet.
type DetectedShift struct {
	Date            civil.Date
	StartMin        int
	EndMin          int
	CrossesMidnight bool
	Confidence      float64
}

// TimeBlock returns the shift as a time block ready for midnight splitting
func (s DetectedShift) TimeBlock() TimeBlock {
	return TimeBlock{Date: s.Date, StartMin: s.StartMin, EndMin: s.EndMin}
}

// ParseIssue describes a line of recognized text that did not resolve to a shift
type ParseIssue struct {
	LineNumber int
	Line       string
	Reason     string
}
