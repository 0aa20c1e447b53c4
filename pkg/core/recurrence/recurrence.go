// Package recurrence expands recurring availability templates into dated blocks
package recurrence

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/teambition/rrule-go"

	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/timeutil"
)

// Template is a weekly (or any RRULE-shaped) availability pattern for one member
type Template struct {
	GroupCode string
	UserID    string
	Kind      model.BlockKind
	RRule     string
	StartMin  int
	EndMin    int
}

// Expand returns one block per occurrence of each template inside the closed range
// [start, end]. Blocks are ordered by template, then by date, and carry
// SourceRecurring. A template crossing midnight produces crossing blocks; they are
// split by the aggregator like any other.
func Expand(templates []Template, groupID string, start, end civil.Date) ([]model.AvailabilityBlock, error) {
	result := []model.AvailabilityBlock{}
	if end.Before(start) {
		return result, nil
	}

	rangeStart := timeutil.DateToTime(start)
	rangeEnd := timeutil.DateToTime(end)

	for i, tmpl := range templates {
		if !tmpl.Kind.IsValid() {
			return nil, fmt.Errorf("invalid kind %q in recurring template %d", tmpl.Kind, i)
		}

		rule, err := rrule.StrToRRule(tmpl.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for recurring template %d: %w", i, err)
		}

		// Anchor at midnight UTC on the first planning day so occurrences land on whole dates
		rule.DTStart(rangeStart)

		for _, occurrence := range rule.Between(rangeStart, rangeEnd, true) {
			result = append(result, model.AvailabilityBlock{
				GroupID: groupID,
				UserID:  tmpl.UserID,
				Kind:    tmpl.Kind,
				Source:  model.SourceRecurring,
				TimeBlock: model.TimeBlock{
					Date:     civil.DateOf(occurrence.In(time.UTC)),
					StartMin: tmpl.StartMin,
					EndMin:   tmpl.EndMin,
				},
			})
		}
	}

	return result, nil
}
