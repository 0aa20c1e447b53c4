package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/group-planner/pkg/db"
)

const dateLayout = "2006-01-02"

// InsertGroup inserts a new group record
func (d *DB) InsertGroup(ctx context.Context, group *db.Group) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO planner_group (id, code, name, planning_start, planning_end,
			buffer_before_work_min, slot_size_min, yellow_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, group.ID, group.Code, group.Name, group.PlanningStart, group.PlanningEnd,
		group.BufferBeforeWorkMin, group.SlotSizeMin, group.YellowThreshold)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroupByCode retrieves the group with the given join code
func (d *DB) GetGroupByCode(ctx context.Context, code string) (*db.Group, error) {
	var g db.Group
	var start, end time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT id, code, name, planning_start, planning_end,
			buffer_before_work_min, slot_size_min, yellow_threshold
		FROM planner_group
		WHERE code = $1
	`, code).Scan(&g.ID, &g.Code, &g.Name, &start, &end,
		&g.BufferBeforeWorkMin, &g.SlotSizeMin, &g.YellowThreshold)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", code, db.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query group: %w", err)
	}

	g.PlanningStart = start.Format(dateLayout)
	g.PlanningEnd = end.Format(dateLayout)
	return &g, nil
}
