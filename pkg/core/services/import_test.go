package services

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/db"
)

func shift(date civil.Date, start, end int) model.DetectedShift {
	return model.DetectedShift{
		Date:            date,
		StartMin:        start,
		EndMin:          end,
		CrossesMidnight: end < start || end >= 1440,
		Confidence:      1.0,
	}
}

func TestParseSchedule(t *testing.T) {
	text := "15/01\n11:00 - 17:00\n15/12\n09:00 - 10:00"

	result, err := ParseSchedule(context.Background(), newGroupStore(), zap.NewNop(), "ABC123", text)
	require.NoError(t, err)

	require.Len(t, result.Shifts, 1)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 15}, result.Shifts[0].Date)
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0].Reason, "planning range")
}

func TestParseSchedule_UnknownGroup(t *testing.T) {
	_, err := ParseSchedule(context.Background(), newGroupStore(), zap.NewNop(), "XXXXXX", "15/01 10:00-11:00")
	assert.True(t, errors.Is(err, db.ErrNotFound))
}

func TestImportShifts_AcceptsValidShifts(t *testing.T) {
	store := newGroupStore()
	shifts := []model.DetectedShift{
		shift(jan2, 540, 1020),
		shift(jan2, 1320, 120),
	}

	results, err := ImportShifts(context.Background(), store, zap.NewNop(), "ABC123", "bob", shifts, ImportOptions{Today: jan1})
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
	}
	assert.Len(t, results[0].Blocks, 1)
	assert.Len(t, results[1].Blocks, 2)

	require.Len(t, store.blocks, 3)
	for _, b := range store.blocks {
		assert.Equal(t, "WORK", b.Kind)
		assert.Equal(t, "OCR", b.Source)
		assert.Equal(t, "bob", b.UserID)
		assert.NotEmpty(t, b.ID)
	}
	// stored without the work buffer
	assert.Equal(t, 540, store.blocks[0].StartMin)
	assert.Equal(t, "2024-01-03", store.blocks[2].Date)
	assert.Equal(t, 0, store.blocks[2].StartMin)
	assert.Equal(t, 120, store.blocks[2].EndMin)
}

func TestImportShifts_RejectsPerShift(t *testing.T) {
	store := newGroupStore()
	store.blocks = []db.AvailabilityBlock{
		{ID: "existing", GroupID: testGroupID, UserID: "bob", Date: "2024-01-20", StartMin: 600, EndMin: 720, Kind: "UNAVAILABLE", Source: "MANUAL"},
		{ID: "alices", GroupID: testGroupID, UserID: "alice", Date: "2024-01-21", StartMin: 600, EndMin: 720, Kind: "WORK", Source: "MANUAL"},
	}
	today := civil.Date{Year: 2024, Month: 1, Day: 10}

	shifts := []model.DetectedShift{
		shift(civil.Date{Year: 2024, Month: 1, Day: 5}, 540, 600),   // past
		shift(civil.Date{Year: 2024, Month: 2, Day: 5}, 540, 600),   // out of range
		shift(civil.Date{Year: 2024, Month: 1, Day: 20}, 700, 800),  // overlaps existing
		shift(civil.Date{Year: 2024, Month: 1, Day: 21}, 600, 720),  // only overlaps another user's block
		shift(civil.Date{Year: 2024, Month: 1, Day: 22}, 1380, 60),  // accepted, spills into the 23rd
		shift(civil.Date{Year: 2024, Month: 1, Day: 23}, 0, 30),     // overlaps the spill accepted above
		shift(civil.Date{Year: 2024, Month: 1, Day: 24}, 600, 600),  // invalid
		shift(civil.Date{Year: 2024, Month: 1, Day: 20}, 720, 780),  // touches existing, accepted
	}

	results, err := ImportShifts(context.Background(), store, zap.NewNop(), "ABC123", "bob", shifts, ImportOptions{Today: today})
	require.NoError(t, err)
	require.Len(t, results, len(shifts))

	assert.True(t, errors.Is(results[0].Err, ErrShiftInPast))
	assert.True(t, errors.Is(results[1].Err, ErrShiftOutOfRange))
	assert.True(t, errors.Is(results[2].Err, ErrShiftOverlaps))
	assert.NoError(t, results[3].Err)
	assert.NoError(t, results[4].Err)
	assert.True(t, errors.Is(results[5].Err, ErrShiftOverlaps))
	assert.True(t, errors.Is(results[6].Err, ErrInvalidShift))
	assert.NoError(t, results[7].Err)

	for i, r := range results {
		assert.Equal(t, shifts[i], r.Shift)
		if r.Err != nil {
			assert.Empty(t, r.Blocks)
		}
	}

	// two existing blocks plus one, two and one pieces
	assert.Len(t, store.blocks, 6)
}

func TestImportShifts_NotMember(t *testing.T) {
	store := newGroupStore()

	results, err := ImportShifts(context.Background(), store, zap.NewNop(), "ABC123", "mallory",
		[]model.DetectedShift{shift(jan2, 540, 600), shift(jan2, 700, 800)}, ImportOptions{Today: jan1})
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, errors.Is(r.Err, ErrNotMember))
	}
	assert.Empty(t, store.blocks)
}

func TestImportShifts_DryRun(t *testing.T) {
	store := newGroupStore()
	shifts := []model.DetectedShift{
		shift(jan2, 540, 600),
		shift(jan2, 570, 630),
	}

	results, err := ImportShifts(context.Background(), store, zap.NewNop(), "ABC123", "bob", shifts, ImportOptions{Today: jan1, DryRun: true})
	require.NoError(t, err)

	assert.NoError(t, results[0].Err)
	require.Len(t, results[0].Blocks, 1)
	assert.Empty(t, results[0].Blocks[0].ID)
	// overlap with a shift accepted earlier in the same dry run is still reported
	assert.True(t, errors.Is(results[1].Err, ErrShiftOverlaps))
	assert.Empty(t, store.blocks)
	assert.Equal(t, 0, store.insertBlocksCalls)
}

func TestImportShifts_InsertFailureDoesNotStopBatch(t *testing.T) {
	store := newGroupStore()
	store.insertBlocksErr = errors.New("connection reset")

	results, err := ImportShifts(context.Background(), store, zap.NewNop(), "ABC123", "bob",
		[]model.DetectedShift{shift(jan2, 540, 600), shift(jan2, 700, 800)}, ImportOptions{Today: jan1})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Equal(t, 2, store.insertBlocksCalls)
}
