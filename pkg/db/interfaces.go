package db

import "context"

// GroupStore defines the interface for group database operations
type GroupStore interface {
	InsertGroup(ctx context.Context, group *Group) error
	// GetGroupByCode returns ErrNotFound when no group has the code
	GetGroupByCode(ctx context.Context, code string) (*Group, error)
}

// MemberStore defines the interface for group membership database operations
type MemberStore interface {
	InsertMember(ctx context.Context, member *GroupMember) error
	GetMembers(ctx context.Context, groupID string) ([]GroupMember, error)
}

// BlockStore defines the interface for availability block database operations
type BlockStore interface {
	InsertBlocks(ctx context.Context, blocks []AvailabilityBlock) error
	GetBlocks(ctx context.Context, groupID string) ([]AvailabilityBlock, error)
	// DeleteBlock returns ErrNotFound when the group has no block with the ID
	DeleteBlock(ctx context.Context, groupID, blockID string) error
}

// BlockedWindowStore defines the interface for blocked window database operations
type BlockedWindowStore interface {
	InsertBlockedWindow(ctx context.Context, window *BlockedWindow) error
	GetBlockedWindows(ctx context.Context, groupID string) ([]BlockedWindow, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	GroupStore
	MemberStore
	BlockStore
	BlockedWindowStore
}
