package scheduleparse

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/timeutil"
)

const (
	reasonEmptyText      = "empty text"
	reasonOutOfRange     = "date outside planning range"
	reasonNoDate         = "time range without an associated date"
	reasonIncomplete     = "incomplete time range"
	reasonInvalidClock   = "invalid hour or minute values"
	pairingLineDistance  = 2
	confidenceSameLine   = 1.0
	confidenceCarried    = 0.9
	confidencePairedTime = 0.7
)

type dateContext int

const (
	// NoDateContext: times seen now have nothing to attach to
	noDateContext dateContext = iota
	hasDateContext
	// RejectedDateContext: the last date failed to resolve and was already reported,
	// so times under it are dropped without a second issue
	rejectedDateContext
)

// state is the only thing carried from one token to the next
type state struct {
	context dateContext
	date    civil.Date
	// dateLine is the retained-line index of the date token
	dateLine int
}

// transition is the outcome of feeding tokens to step
type transition struct {
	next     state
	consumed int
	shift    *model.DetectedShift
	issue    *model.ParseIssue
}

type resolver struct {
	start civil.Date
	end   civil.Date
}

// resolve folds the token stream into shifts and issues
func (r resolver) resolve(tokens []token) Result {
	result := Result{Shifts: []model.DetectedShift{}, Issues: []model.ParseIssue{}}

	s := state{context: noDateContext}
	for i := 0; i < len(tokens); {
		t := r.step(s, tokens[i:])
		if t.shift != nil {
			result.Shifts = append(result.Shifts, *t.shift)
		}
		if t.issue != nil {
			result.Issues = append(result.Issues, *t.issue)
		}
		s = t.next
		i += t.consumed
	}
	return result
}

// step consumes the first token of rest, and the token after it when the two pair
// into one shift
func (r resolver) step(s state, rest []token) transition {
	tok := rest[0]

	switch tok.kind {
	case tokenFreeDay:
		return transition{next: state{context: noDateContext}, consumed: 1}

	case tokenDate:
		date, ok := r.resolveDate(tok)
		if !ok {
			return transition{
				next:     state{context: rejectedDateContext},
				consumed: 1,
				issue: newIssue(tok, fmt.Sprintf("%s: %02d/%02d not within %s..%s",
					reasonOutOfRange, tok.day, tok.month, r.start, r.end)),
			}
		}
		return transition{
			next:     state{context: hasDateContext, date: date, dateLine: tok.line.index},
			consumed: 1,
		}

	case tokenRange:
		t := transition{next: s, consumed: 1}
		switch s.context {
		case noDateContext:
			t.issue = newIssue(tok, reasonNoDate)
		case hasDateContext:
			confidence := confidenceCarried
			if s.dateLine == tok.line.index {
				confidence = confidenceSameLine
			}
			t.shift, t.issue = buildShift(tok, s.date, tok.start, tok.end, confidence)
		}
		return t

	case tokenDangling, tokenTime:
		partner, paired := pairedTime(rest)
		if !paired {
			t := transition{next: s, consumed: 1}
			if s.context != rejectedDateContext {
				t.issue = newIssue(tok, reasonIncomplete)
			}
			return t
		}

		t := transition{next: s, consumed: 2}
		switch s.context {
		case noDateContext:
			t.issue = newIssue(tok, reasonNoDate)
		case hasDateContext:
			t.shift, t.issue = buildShift(tok, s.date, tok.start, partner.start, confidencePairedTime)
		}
		return t
	}

	return transition{next: s, consumed: 1}
}

// pairedTime returns the bare time that closes the dangling or bare time at rest[0]
func pairedTime(rest []token) (token, bool) {
	if len(rest) < 2 {
		return token{}, false
	}
	next := rest[1]
	if next.kind != tokenTime {
		return token{}, false
	}
	if next.line.index-rest[0].line.index > pairingLineDistance {
		return token{}, false
	}
	return next, true
}

// resolveDate finds the first calendar-valid date inside the planning range among
// the candidate years
func (r resolver) resolveDate(tok token) (civil.Date, bool) {
	first, last := r.start.Year-1, r.end.Year+1
	if tok.year != 0 {
		first, last = tok.year, tok.year
	}

	for year := first; year <= last; year++ {
		candidate := civil.Date{Year: year, Month: time.Month(tok.month), Day: tok.day}
		if !candidate.IsValid() {
			continue
		}
		if timeutil.InRange(candidate, r.start, r.end) {
			return candidate, true
		}
	}
	return civil.Date{}, false
}

// buildShift converts clock readings into a shift, or an issue when they are not
// a usable time range
func buildShift(tok token, date civil.Date, start, end clock, confidence float64) (*model.DetectedShift, *model.ParseIssue) {
	startMin, startOK := clockMinutes(start, false)
	endMin, endOK := clockMinutes(end, true)
	if !startOK || !endOK || startMin == endMin%timeutil.MinutesPerDay {
		return nil, newIssue(tok, fmt.Sprintf("%s: %02d:%02d-%02d:%02d",
			reasonInvalidClock, start.hour, start.minute, end.hour, end.minute))
	}

	return &model.DetectedShift{
		Date:            date,
		StartMin:        startMin,
		EndMin:          endMin,
		CrossesMidnight: endMin < startMin || endMin >= timeutil.MinutesPerDay,
		Confidence:      confidence,
	}, nil
}

// clockMinutes validates a clock reading. An end of 00:00 or 24:00 means end of day.
func clockMinutes(c clock, isEnd bool) (int, bool) {
	if isEnd && c.minute == 0 && (c.hour == 0 || c.hour == 24) {
		return timeutil.MinutesPerDay, true
	}
	if c.hour < 0 || c.hour > 23 || c.minute < 0 || c.minute > 59 {
		return 0, false
	}
	return c.hour*60 + c.minute, true
}

func newIssue(tok token, reason string) *model.ParseIssue {
	return &model.ParseIssue{
		LineNumber: tok.line.number,
		Line:       tok.line.raw,
		Reason:     reason,
	}
}
