// Package scheduleparse extracts work shifts from the recognized text of a
// photographed schedule.
//
// Parsing runs in two phases. Each line is normalized and split into tokens
// (dates, day-off markers, time ranges and loose times), then the token stream is
// folded into shifts while carrying the current date from line to line. Anything
// that cannot become a shift is reported as a ParseIssue; Parse never fails.
package scheduleparse

import (
	"strings"

	"cloud.google.com/go/civil"

	"github.com/jakechorley/group-planner/pkg/core/model"
)

// Result holds the shifts and issues found in one piece of text. Both slices are
// non-nil.
type Result struct {
	Shifts []model.DetectedShift
	Issues []model.ParseIssue
}

// Parse extracts shifts from text, resolving day/month dates against the closed
// planning range [planningStart, planningEnd]
func Parse(text string, planningStart, planningEnd civil.Date) Result {
	var lines []line
	if strings.TrimSpace(text) != "" {
		lines = normalizeText(text)
	}
	if len(lines) == 0 {
		return Result{
			Shifts: []model.DetectedShift{},
			Issues: []model.ParseIssue{{Reason: reasonEmptyText}},
		}
	}

	r := resolver{start: planningStart, end: planningEnd}
	return r.resolve(tokenize(lines))
}
