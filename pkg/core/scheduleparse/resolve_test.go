package scheduleparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineAt(index int) line {
	return line{index: index, number: index + 1, raw: "raw", text: "text"}
}

func dateToken(index, day, month int) token {
	return token{kind: tokenDate, line: lineAt(index), day: day, month: month}
}

func rangeToken(index int, sh, sm, eh, em int) token {
	return token{kind: tokenRange, line: lineAt(index), start: clock{sh, sm}, end: clock{eh, em}}
}

func timeToken(kind tokenKind, index, h, m int) token {
	return token{kind: kind, line: lineAt(index), start: clock{h, m}}
}

var janResolver = resolver{start: janStart, end: janEnd}

func TestStep_DateSetsContext(t *testing.T) {
	tr := janResolver.step(state{}, []token{dateToken(3, 15, 1)})

	assert.Equal(t, hasDateContext, tr.next.context)
	assert.Equal(t, date("2024-01-15"), tr.next.date)
	assert.Equal(t, 3, tr.next.dateLine)
	assert.Equal(t, 1, tr.consumed)
	assert.Nil(t, tr.shift)
	assert.Nil(t, tr.issue)
}

func TestStep_RejectedDate(t *testing.T) {
	prev := state{context: hasDateContext, date: date("2024-01-10")}

	tr := janResolver.step(prev, []token{dateToken(0, 15, 12)})

	assert.Equal(t, rejectedDateContext, tr.next.context)
	require.NotNil(t, tr.issue)
	assert.Contains(t, tr.issue.Reason, "2024-01-01..2024-01-31")
}

func TestStep_FreeDayClearsContext(t *testing.T) {
	for _, ctx := range []dateContext{noDateContext, hasDateContext, rejectedDateContext} {
		tr := janResolver.step(state{context: ctx, date: date("2024-01-10")},
			[]token{{kind: tokenFreeDay, line: lineAt(0)}})

		assert.Equal(t, noDateContext, tr.next.context)
		assert.Nil(t, tr.issue)
	}
}

func TestStep_Range(t *testing.T) {
	rng := rangeToken(2, 9, 0, 13, 0)

	t.Run("no date", func(t *testing.T) {
		tr := janResolver.step(state{}, []token{rng})

		assert.Nil(t, tr.shift)
		require.NotNil(t, tr.issue)
		assert.Equal(t, reasonNoDate, tr.issue.Reason)
		assert.Equal(t, 3, tr.issue.LineNumber)
	})

	t.Run("rejected date", func(t *testing.T) {
		tr := janResolver.step(state{context: rejectedDateContext}, []token{rng})

		assert.Nil(t, tr.shift)
		assert.Nil(t, tr.issue)
		assert.Equal(t, rejectedDateContext, tr.next.context)
	})

	t.Run("carried date", func(t *testing.T) {
		s := state{context: hasDateContext, date: date("2024-01-10"), dateLine: 0}

		tr := janResolver.step(s, []token{rng})

		require.NotNil(t, tr.shift)
		assert.Equal(t, date("2024-01-10"), tr.shift.Date)
		assert.Equal(t, 540, tr.shift.StartMin)
		assert.Equal(t, 780, tr.shift.EndMin)
		assert.Equal(t, confidenceCarried, tr.shift.Confidence)
		assert.Equal(t, s, tr.next)
	})

	t.Run("same line date", func(t *testing.T) {
		s := state{context: hasDateContext, date: date("2024-01-10"), dateLine: 2}

		tr := janResolver.step(s, []token{rng})

		require.NotNil(t, tr.shift)
		assert.Equal(t, confidenceSameLine, tr.shift.Confidence)
	})
}

func TestStep_Pairing(t *testing.T) {
	s := state{context: hasDateContext, date: date("2024-01-10")}

	t.Run("dangling pairs with close time", func(t *testing.T) {
		tr := janResolver.step(s, []token{timeToken(tokenDangling, 0, 13, 0), timeToken(tokenTime, 2, 17, 0)})

		assert.Equal(t, 2, tr.consumed)
		require.NotNil(t, tr.shift)
		assert.Equal(t, 780, tr.shift.StartMin)
		assert.Equal(t, 1020, tr.shift.EndMin)
		assert.Equal(t, confidencePairedTime, tr.shift.Confidence)
	})

	t.Run("dangling too far", func(t *testing.T) {
		tr := janResolver.step(s, []token{timeToken(tokenDangling, 0, 13, 0), timeToken(tokenTime, 3, 17, 0)})

		assert.Equal(t, 1, tr.consumed)
		require.NotNil(t, tr.issue)
		assert.Equal(t, reasonIncomplete, tr.issue.Reason)
	})

	t.Run("dangling followed by range", func(t *testing.T) {
		tr := janResolver.step(s, []token{timeToken(tokenDangling, 0, 13, 0), rangeToken(1, 9, 0, 10, 0)})

		assert.Equal(t, 1, tr.consumed)
		require.NotNil(t, tr.issue)
		assert.Equal(t, reasonIncomplete, tr.issue.Reason)
	})

	t.Run("bare times without date", func(t *testing.T) {
		tr := janResolver.step(state{}, []token{timeToken(tokenTime, 0, 13, 0), timeToken(tokenTime, 0, 17, 0)})

		assert.Equal(t, 2, tr.consumed)
		assert.Nil(t, tr.shift)
		require.NotNil(t, tr.issue)
		assert.Equal(t, reasonNoDate, tr.issue.Reason)
	})

	t.Run("bare times under rejected date", func(t *testing.T) {
		tr := janResolver.step(state{context: rejectedDateContext},
			[]token{timeToken(tokenTime, 0, 13, 0), timeToken(tokenTime, 0, 17, 0)})

		assert.Equal(t, 2, tr.consumed)
		assert.Nil(t, tr.shift)
		assert.Nil(t, tr.issue)
	})
}

func TestBuildShift(t *testing.T) {
	tok := rangeToken(0, 0, 0, 0, 0)
	d := date("2024-01-10")

	tests := []struct {
		name       string
		start, end clock
		wantOK     bool
		wantEnd    int
		wantCross  bool
	}{
		{"day shift", clock{9, 0}, clock{17, 0}, true, 1020, false},
		{"midnight end", clock{16, 0}, clock{0, 0}, true, 1440, true},
		{"24:00 end", clock{16, 0}, clock{24, 0}, true, 1440, true},
		{"overnight", clock{22, 0}, clock{6, 0}, true, 360, true},
		{"24:30 end", clock{16, 0}, clock{24, 30}, false, 0, false},
		{"start 24:00", clock{24, 0}, clock{6, 0}, false, 0, false},
		{"same times", clock{8, 0}, clock{8, 0}, false, 0, false},
		{"zero to zero", clock{0, 0}, clock{0, 0}, false, 0, false},
		{"bad minute", clock{8, 60}, clock{9, 0}, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift, issue := buildShift(tok, d, tt.start, tt.end, 1.0)

			if !tt.wantOK {
				assert.Nil(t, shift)
				require.NotNil(t, issue)
				assert.Contains(t, issue.Reason, reasonInvalidClock)
				return
			}
			require.Nil(t, issue)
			require.NotNil(t, shift)
			assert.Equal(t, tt.wantEnd, shift.EndMin)
			assert.Equal(t, tt.wantCross, shift.CrossesMidnight)
		})
	}
}

func TestTokenizeLine_Order(t *testing.T) {
	l := line{text: "10:00-12:00 15/01 libre 18:00"}

	tokens := tokenizeLine(l)

	kinds := make([]tokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.kind
	}
	// the full range suppresses the free-day word
	assert.Equal(t, []tokenKind{tokenDate, tokenRange, tokenTime}, kinds)
}

func TestTokenizeLine_InterleavesDatesAndTimes(t *testing.T) {
	tokens := tokenizeLine(line{text: "15/01 09:00-13:00 16/01 14:00-18:00"})

	require.Len(t, tokens, 4)
	assert.Equal(t, tokenDate, tokens[0].kind)
	assert.Equal(t, 15, tokens[0].day)
	assert.Equal(t, tokenRange, tokens[1].kind)
	assert.Equal(t, 9, tokens[1].start.hour)
	assert.Equal(t, tokenDate, tokens[2].kind)
	assert.Equal(t, 16, tokens[2].day)
	assert.Equal(t, tokenRange, tokens[3].kind)
}

func TestTokenizeLine_DatesNotReadInsideTimes(t *testing.T) {
	tokens := tokenizeLine(line{text: "11:00-17:00"})

	require.Len(t, tokens, 1)
	assert.Equal(t, tokenRange, tokens[0].kind)
}
