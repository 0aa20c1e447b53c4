package scheduleparse

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenDate tokenKind = iota
	tokenFreeDay
	tokenRange
	tokenDangling
	tokenTime
)

func (k tokenKind) String() string {
	switch k {
	case tokenDate:
		return "date"
	case tokenFreeDay:
		return "free-day"
	case tokenRange:
		return "range"
	case tokenDangling:
		return "dangling"
	case tokenTime:
		return "time"
	}
	return "unknown"
}

// clock is an hour/minute pair as read from the text, not yet validated
type clock struct {
	hour   int
	minute int
}

type token struct {
	kind tokenKind
	line line
	pos  int

	// tokenDate
	day   int
	month int
	year  int // 0 when the text has no year

	// tokenRange uses start and end, tokenDangling and tokenTime use start
	start clock
	end   clock
}

var (
	fullRange    = regexp.MustCompile(`(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})`)
	danglingTime = regexp.MustCompile(`(\d{1,2}):(\d{2})-$`)
	bareTime     = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	datePattern  = regexp.MustCompile(`(\d{1,2})[/.\-](\d{1,2})(?:[/.\-](\d{4}|\d{2}))?`)

	freeDayPattern = regexp.MustCompile(`\b(?:dia libre|libre|libranza|descanso|sin trabajo|no trabajo|day off|rest day|free day|off|rest)\b`)
)

// tokenize reads every line left to right. Within a line, dates and times keep
// their text order, except that times written before the line's first date follow
// that date, so every range sees a date written on its own line.
func tokenize(lines []line) []token {
	var tokens []token
	for _, l := range lines {
		tokens = append(tokens, tokenizeLine(l)...)
	}
	return tokens
}

func tokenizeLine(l line) []token {
	masked := []byte(l.text)
	var times []token

	for _, m := range findBounded(fullRange, string(masked)) {
		times = append(times, token{
			kind:  tokenRange,
			line:  l,
			pos:   m[0],
			start: clock{hour: atoi(l.text[m[2]:m[3]]), minute: atoi(l.text[m[4]:m[5]])},
			end:   clock{hour: atoi(l.text[m[6]:m[7]]), minute: atoi(l.text[m[8]:m[9]])},
		})
		mask(masked, m[0], m[1])
	}
	hasRange := len(times) > 0

	for _, m := range findBounded(danglingTime, string(masked)) {
		times = append(times, token{
			kind:  tokenDangling,
			line:  l,
			pos:   m[0],
			start: clock{hour: atoi(l.text[m[2]:m[3]]), minute: atoi(l.text[m[4]:m[5]])},
		})
		mask(masked, m[0], m[1])
	}

	for _, m := range findBounded(bareTime, string(masked)) {
		times = append(times, token{
			kind:  tokenTime,
			line:  l,
			pos:   m[0],
			start: clock{hour: atoi(l.text[m[2]:m[3]]), minute: atoi(l.text[m[4]:m[5]])},
		})
		mask(masked, m[0], m[1])
	}

	var tokens []token
	for _, m := range findBounded(datePattern, string(masked)) {
		day, month := atoi(l.text[m[2]:m[3]]), atoi(l.text[m[4]:m[5]])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}
		year := 0
		if m[6] >= 0 {
			year = atoi(l.text[m[6]:m[7]])
			if m[7]-m[6] == 2 {
				year += 2000
			}
		}
		tokens = append(tokens, token{kind: tokenDate, line: l, pos: m[0], day: day, month: month, year: year})
	}

	slices.SortStableFunc(times, func(a, b token) int { return a.pos - b.pos })

	// A free-day word next to a real shift is stray text, not a day off
	if !hasRange {
		if loc := freeDayPattern.FindStringIndex(foldKeywords(string(masked))); loc != nil {
			tokens = append(tokens, token{kind: tokenFreeDay, line: l, pos: loc[0]})
			return append(tokens, times...)
		}
	}

	return interleave(tokens, times)
}

// interleave merges dates and times by position. Times before the first date are
// emitted right after it. Both inputs are in text order.
func interleave(dates, times []token) []token {
	if len(dates) == 0 {
		return times
	}

	result := make([]token, 0, len(dates)+len(times))
	result = append(result, dates[0])
	i := 0
	for i < len(times) && times[i].pos < dates[0].pos {
		result = append(result, times[i])
		i++
	}

	for _, d := range dates[1:] {
		for i < len(times) && times[i].pos < d.pos {
			result = append(result, times[i])
			i++
		}
		result = append(result, d)
	}
	return append(result, times[i:]...)
}

// findBounded returns submatch indexes of re whose match is not glued to a digit
func findBounded(re *regexp.Regexp, s string) [][]int {
	var result [][]int
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		if isDigitAt(s, m[0]-1) || isDigitAt(s, m[1]) {
			continue
		}
		result = append(result, m)
	}
	return result
}

func isDigitAt(s string, i int) bool {
	return i >= 0 && i < len(s) && s[i] >= '0' && s[i] <= '9'
}

// mask blanks out a consumed span so later patterns cannot match inside it
func mask(b []byte, from, to int) {
	for i := from; i < to; i++ {
		b[i] = ' '
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return n
}
