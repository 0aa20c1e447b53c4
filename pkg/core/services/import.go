package services

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/group-planner/pkg/core/blocks"
	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/scheduleparse"
	"github.com/jakechorley/group-planner/pkg/core/timeutil"
	"github.com/jakechorley/group-planner/pkg/db"
)

var (
	ErrShiftInPast     = errors.New("shift date is in the past")
	ErrShiftOutOfRange = errors.New("shift date is outside the planning range")
	ErrShiftOverlaps   = errors.New("shift overlaps an existing block")
	ErrInvalidShift    = errors.New("shift times are invalid")
)

// ParseScheduleStore defines the database operations needed to parse a schedule
type ParseScheduleStore interface {
	GetGroupByCode(ctx context.Context, code string) (*db.Group, error)
}

// ParseSchedule extracts shifts from recognized schedule text, resolving dates
// against the group's planning range
func ParseSchedule(ctx context.Context, store ParseScheduleStore, logger *zap.Logger, groupCode, text string) (*scheduleparse.Result, error) {
	record, err := store.GetGroupByCode(ctx, NormalizeGroupCode(groupCode))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}
	group, err := record.ToModel()
	if err != nil {
		return nil, err
	}

	result := scheduleparse.Parse(text, group.PlanningStart, group.PlanningEnd)

	logger.Info("Schedule parsed",
		zap.String("group", group.Code),
		zap.Int("shifts", len(result.Shifts)),
		zap.Int("issues", len(result.Issues)))
	for _, issue := range result.Issues {
		logger.Debug("Parse issue",
			zap.Int("line_number", issue.LineNumber),
			zap.String("line", issue.Line),
			zap.String("reason", issue.Reason))
	}

	return &result, nil
}

// ImportStore defines the database operations needed to import shifts
type ImportStore interface {
	GroupReader
	GetBlocks(ctx context.Context, groupID string) ([]db.AvailabilityBlock, error)
	InsertBlocks(ctx context.Context, blocks []db.AvailabilityBlock) error
}

// ImportOptions controls an import
type ImportOptions struct {
	// Today is the first date a shift may fall on
	Today civil.Date
	// DryRun validates every shift without storing anything
	DryRun bool
}

// ImportResult is the outcome of importing one detected shift
type ImportResult struct {
	Shift model.DetectedShift
	// Blocks are the stored (or, in a dry run, would-be) midnight-split pieces
	Blocks []model.AvailabilityBlock
	Err    error
}

// ImportShifts stores detected shifts as WORK blocks with source OCR.
// Each shift is validated on its own: the user must belong to the group, the shift
// must not start before opts.Today, must fall inside the planning range and must
// not overlap the user's existing blocks or a shift accepted earlier in the same
// batch. A rejected shift never stops the rest of the batch.
func ImportShifts(ctx context.Context, store ImportStore, logger *zap.Logger, groupCode, userID string, shifts []model.DetectedShift, opts ImportOptions) ([]ImportResult, error) {
	group, members, err := loadGroup(ctx, store, logger, groupCode)
	if err != nil {
		return nil, err
	}

	results := make([]ImportResult, len(shifts))
	for i, s := range shifts {
		results[i].Shift = s
	}

	if err := requireMember(group, members, userID); err != nil {
		for i := range results {
			results[i].Err = err
		}
		return results, nil
	}

	records, err := store.GetBlocks(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks: %w", err)
	}
	var taken []model.AvailabilityBlock
	for _, r := range records {
		if r.UserID != userID {
			continue
		}
		b, err := r.ToModel()
		if err != nil {
			return nil, err
		}
		taken = append(taken, b)
	}

	imported := 0
	for i, shift := range shifts {
		pieces, err := validateShift(group, userID, shift, opts.Today, taken)
		if err != nil {
			results[i].Err = err
			logger.Debug("Shift rejected",
				zap.String("date", shift.Date.String()),
				zap.Int("start_min", shift.StartMin),
				zap.Int("end_min", shift.EndMin),
				zap.Error(err))
			continue
		}

		if !opts.DryRun {
			if pieces, err = storePieces(ctx, store, pieces); err != nil {
				results[i].Err = err
				logger.Warn("Failed to store shift", zap.String("date", shift.Date.String()), zap.Error(err))
				continue
			}
		}

		results[i].Blocks = pieces
		taken = append(taken, pieces...)
		imported++
	}

	logger.Info("Shifts imported",
		zap.String("group", group.Code),
		zap.String("user_id", userID),
		zap.Int("accepted", imported),
		zap.Int("rejected", len(shifts)-imported),
		zap.Bool("dry_run", opts.DryRun))

	return results, nil
}

// validateShift checks one shift and returns its midnight-split pieces
func validateShift(group model.Group, userID string, shift model.DetectedShift, today civil.Date, taken []model.AvailabilityBlock) ([]model.AvailabilityBlock, error) {
	if shift.StartMin < 0 || shift.StartMin >= timeutil.MinutesPerDay ||
		shift.EndMin < 0 || shift.EndMin > timeutil.MinutesPerDay ||
		shift.StartMin == shift.EndMin {
		return nil, fmt.Errorf("%s %d-%d: %w", shift.Date, shift.StartMin, shift.EndMin, ErrInvalidShift)
	}
	if shift.Date.Before(today) {
		return nil, fmt.Errorf("%s is before %s: %w", shift.Date, today, ErrShiftInPast)
	}
	if !timeutil.InRange(shift.Date, group.PlanningStart, group.PlanningEnd) {
		return nil, fmt.Errorf("%s not within %s..%s: %w", shift.Date, group.PlanningStart, group.PlanningEnd, ErrShiftOutOfRange)
	}

	pieces := blocks.SplitBlock(model.AvailabilityBlock{
		GroupID:   group.ID,
		UserID:    userID,
		Kind:      model.KindWork,
		Source:    model.SourceOCR,
		TimeBlock: shift.TimeBlock(),
	})

	for _, piece := range pieces {
		for _, existing := range taken {
			if existing.Date == piece.Date &&
				timeutil.Overlaps(piece.StartMin, piece.EndMin, existing.StartMin, existing.EndMin) {
				return nil, fmt.Errorf("%s %s-%s: %w", piece.Date,
					timeutil.MustClock(existing.StartMin), timeutil.MustClock(existing.EndMin), ErrShiftOverlaps)
			}
		}
	}

	return pieces, nil
}

// storePieces assigns IDs to already split pieces and inserts them together
func storePieces(ctx context.Context, store blockInserter, pieces []model.AvailabilityBlock) ([]model.AvailabilityBlock, error) {
	stored := make([]model.AvailabilityBlock, len(pieces))
	records := make([]db.AvailabilityBlock, len(pieces))
	for i, p := range pieces {
		p.ID = uuid.New().String()
		stored[i] = p
		records[i] = db.BlockFromModel(p)
	}

	if err := store.InsertBlocks(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to insert blocks: %w", err)
	}
	return stored, nil
}
