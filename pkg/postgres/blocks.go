package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/group-planner/pkg/db"
)

// InsertBlocks inserts availability blocks in a single transaction
func (d *DB) InsertBlocks(ctx context.Context, blocks []db.AvailabilityBlock) error {
	if len(blocks) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, b := range blocks {
		batch.Queue(`
			INSERT INTO availability_block (id, group_id, user_id, block_date, start_min, end_min, kind, source)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, b.ID, b.GroupID, b.UserID, b.Date, b.StartMin, b.EndMin, b.Kind, b.Source)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert availability blocks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetBlocks retrieves every availability block of a group ordered by date and start
func (d *DB) GetBlocks(ctx context.Context, groupID string) ([]db.AvailabilityBlock, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, group_id, user_id, block_date, start_min, end_min, kind, source
		FROM availability_block
		WHERE group_id = $1
		ORDER BY block_date, start_min, user_id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability blocks: %w", err)
	}
	defer rows.Close()

	var blocks []db.AvailabilityBlock
	for rows.Next() {
		var b db.AvailabilityBlock
		var date time.Time
		if err := rows.Scan(&b.ID, &b.GroupID, &b.UserID, &date, &b.StartMin, &b.EndMin, &b.Kind, &b.Source); err != nil {
			return nil, fmt.Errorf("failed to scan availability block: %w", err)
		}
		b.Date = date.Format(dateLayout)
		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating availability blocks: %w", err)
	}

	return blocks, nil
}

// DeleteBlock removes one availability block of a group
func (d *DB) DeleteBlock(ctx context.Context, groupID, blockID string) error {
	tag, err := d.pool.Exec(ctx, `
		DELETE FROM availability_block WHERE group_id = $1 AND id = $2
	`, groupID, blockID)
	if err != nil {
		return fmt.Errorf("failed to delete availability block: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("block %s: %w", blockID, db.ErrNotFound)
	}
	return nil
}
