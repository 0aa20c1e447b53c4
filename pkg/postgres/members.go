package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/group-planner/pkg/db"
)

// InsertMember adds a user to a group
func (d *DB) InsertMember(ctx context.Context, member *db.GroupMember) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO group_member (group_id, user_id, role)
		VALUES ($1, $2, $3)
	`, member.GroupID, member.UserID, member.Role)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

// GetMembers retrieves the members of a group in the order they joined
func (d *DB) GetMembers(ctx context.Context, groupID string) ([]db.GroupMember, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT group_id, user_id, role
		FROM group_member
		WHERE group_id = $1
		ORDER BY joined_at, user_id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	var members []db.GroupMember
	for rows.Next() {
		var m db.GroupMember
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.Role); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group members: %w", err)
	}

	return members, nil
}
