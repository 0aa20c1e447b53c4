package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/group-planner/pkg/core/blocks"
	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/timeutil"
	"github.com/jakechorley/group-planner/pkg/db"
)

// BlockParams describes one availability block as entered by a user.
// Start and End are HH:MM; an End of 00:00 or 24:00 means end of day and an End
// before Start crosses midnight.
type BlockParams struct {
	UserID string
	Kind   model.BlockKind
	Date   string
	Start  string
	End    string
}

// BlockResult holds the stored pieces of one added block
type BlockResult struct {
	Blocks []model.AvailabilityBlock
}

type blockInserter interface {
	InsertBlocks(ctx context.Context, blocks []db.AvailabilityBlock) error
}

// AddBlockStore defines the database operations needed to add a block
type AddBlockStore interface {
	GroupReader
	blockInserter
}

// AddBlock validates a block, splits it at midnight and stores each piece with
// source MANUAL. The stored interval is exactly what the user entered; the work
// buffer is applied only when slots are computed.
func AddBlock(ctx context.Context, store AddBlockStore, logger *zap.Logger, groupCode string, params BlockParams) (*BlockResult, error) {
	if !params.Kind.IsValid() {
		return nil, fmt.Errorf("invalid block kind %q", params.Kind)
	}

	date, err := timeutil.ParseDate(params.Date)
	if err != nil {
		return nil, err
	}

	startMin, endMin, err := ParseTimeRange(params.Start, params.End)
	if err != nil {
		return nil, err
	}

	group, members, err := loadGroup(ctx, store, logger, groupCode)
	if err != nil {
		return nil, err
	}
	if err := requireMember(group, members, params.UserID); err != nil {
		return nil, err
	}

	block := model.AvailabilityBlock{
		GroupID:   group.ID,
		UserID:    params.UserID,
		Kind:      params.Kind,
		Source:    model.SourceManual,
		TimeBlock: model.TimeBlock{Date: date, StartMin: startMin, EndMin: endMin},
	}

	pieces, err := storePieces(ctx, store, blocks.SplitBlock(block))
	if err != nil {
		return nil, err
	}

	logger.Info("Block added",
		zap.String("group", group.Code),
		zap.String("user_id", params.UserID),
		zap.String("kind", string(params.Kind)),
		zap.String("date", date.String()),
		zap.Int("pieces", len(pieces)))

	return &BlockResult{Blocks: pieces}, nil
}

// DeleteBlockStore defines the database operations needed to delete a block
type DeleteBlockStore interface {
	GetGroupByCode(ctx context.Context, code string) (*db.Group, error)
	DeleteBlock(ctx context.Context, groupID, blockID string) error
}

// DeleteBlock removes one block from a group
func DeleteBlock(ctx context.Context, store DeleteBlockStore, logger *zap.Logger, groupCode, blockID string) error {
	if _, err := uuid.Parse(blockID); err != nil {
		return fmt.Errorf("invalid block ID %q: %w", blockID, err)
	}

	group, err := store.GetGroupByCode(ctx, NormalizeGroupCode(groupCode))
	if err != nil {
		return fmt.Errorf("failed to fetch group: %w", err)
	}

	if err := store.DeleteBlock(ctx, group.ID, blockID); err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}

	logger.Info("Block deleted", zap.String("group", group.Code), zap.String("block_id", blockID))
	return nil
}

// ListBlocksStore defines the database operations needed to list blocks
type ListBlocksStore interface {
	GetGroupByCode(ctx context.Context, code string) (*db.Group, error)
	GetBlocks(ctx context.Context, groupID string) ([]db.AvailabilityBlock, error)
}

// ListBlocks returns the stored blocks of a group, optionally only those of one user
func ListBlocks(ctx context.Context, store ListBlocksStore, logger *zap.Logger, groupCode, userID string) ([]model.AvailabilityBlock, error) {
	group, err := store.GetGroupByCode(ctx, NormalizeGroupCode(groupCode))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}

	records, err := store.GetBlocks(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks: %w", err)
	}

	result := make([]model.AvailabilityBlock, 0, len(records))
	for _, r := range records {
		if userID != "" && r.UserID != userID {
			continue
		}
		b, err := r.ToModel()
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}

	logger.Debug("Listed blocks",
		zap.String("group", group.Code),
		zap.String("user_id", userID),
		zap.Int("count", len(result)))

	return result, nil
}

// BlockedWindowParams describes a group-wide blocked window. A nil DayOfWeek
// blocks the interval every day.
type BlockedWindowParams struct {
	DayOfWeek *time.Weekday
	Start     string
	End       string
}

// AddBlockedWindowStore defines the database operations needed to add a blocked window
type AddBlockedWindowStore interface {
	GetGroupByCode(ctx context.Context, code string) (*db.Group, error)
	InsertBlockedWindow(ctx context.Context, window *db.BlockedWindow) error
}

// AddBlockedWindow stores a blocked window for a group
func AddBlockedWindow(ctx context.Context, store AddBlockedWindowStore, logger *zap.Logger, groupCode string, params BlockedWindowParams) (*model.BlockedWindow, error) {
	if params.DayOfWeek != nil && (*params.DayOfWeek < time.Sunday || *params.DayOfWeek > time.Saturday) {
		return nil, fmt.Errorf("invalid day of week %d", *params.DayOfWeek)
	}

	startMin, endMin, err := ParseTimeRange(params.Start, params.End)
	if err != nil {
		return nil, err
	}

	group, err := store.GetGroupByCode(ctx, NormalizeGroupCode(groupCode))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group: %w", err)
	}

	window := model.BlockedWindow{
		ID:        uuid.New().String(),
		GroupID:   group.ID,
		DayOfWeek: params.DayOfWeek,
		StartMin:  startMin,
		EndMin:    endMin,
	}

	record := db.BlockedWindowFromModel(window)
	if err := store.InsertBlockedWindow(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to insert blocked window: %w", err)
	}

	logger.Info("Blocked window added",
		zap.String("group", group.Code),
		zap.String("start", params.Start),
		zap.String("end", params.End))

	return &window, nil
}

// ParseTimeRange converts HH:MM bounds to minutes. An end of 00:00 or 24:00 is
// end of day (1440); equal bounds are rejected.
func ParseTimeRange(start, end string) (int, int, error) {
	startMin, err := timeutil.ToMinutes(start)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start time: %w", err)
	}

	endMin := timeutil.MinutesPerDay
	if end != "24:00" {
		endMin, err = timeutil.ToMinutes(end)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid end time: %w", err)
		}
		if endMin == 0 {
			endMin = timeutil.MinutesPerDay
		}
	}

	if startMin == endMin {
		return 0, 0, fmt.Errorf("start and end time are both %s", start)
	}
	return startMin, endMin, nil
}
