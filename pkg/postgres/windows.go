package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/group-planner/pkg/db"
)

// InsertBlockedWindow inserts a group-wide blocked window
func (d *DB) InsertBlockedWindow(ctx context.Context, window *db.BlockedWindow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO blocked_window (id, group_id, day_of_week, start_min, end_min)
		VALUES ($1, $2, $3, $4, $5)
	`, window.ID, window.GroupID, window.DayOfWeek, window.StartMin, window.EndMin)
	if err != nil {
		return fmt.Errorf("failed to insert blocked window: %w", err)
	}
	return nil
}

// GetBlockedWindows retrieves the blocked windows of a group
func (d *DB) GetBlockedWindows(ctx context.Context, groupID string) ([]db.BlockedWindow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, group_id, day_of_week, start_min, end_min
		FROM blocked_window
		WHERE group_id = $1
		ORDER BY day_of_week NULLS FIRST, start_min
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocked windows: %w", err)
	}
	defer rows.Close()

	var windows []db.BlockedWindow
	for rows.Next() {
		var w db.BlockedWindow
		if err := rows.Scan(&w.ID, &w.GroupID, &w.DayOfWeek, &w.StartMin, &w.EndMin); err != nil {
			return nil, fmt.Errorf("failed to scan blocked window: %w", err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blocked windows: %w", err)
	}

	return windows, nil
}
