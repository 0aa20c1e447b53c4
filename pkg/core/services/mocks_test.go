package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/jakechorley/group-planner/pkg/db"
)

// mockStore is an in-memory db.Database
type mockStore struct {
	groups  []db.Group
	members []db.GroupMember
	blocks  []db.AvailabilityBlock
	windows []db.BlockedWindow

	insertBlocksErr error
	insertBlocksCalls int
}

var _ db.Database = (*mockStore)(nil)

func (m *mockStore) InsertGroup(ctx context.Context, group *db.Group) error {
	m.groups = append(m.groups, *group)
	return nil
}

func (m *mockStore) GetGroupByCode(ctx context.Context, code string) (*db.Group, error) {
	for _, g := range m.groups {
		if g.Code == code {
			found := g
			return &found, nil
		}
	}
	return nil, fmt.Errorf("group %s: %w", code, db.ErrNotFound)
}

func (m *mockStore) InsertMember(ctx context.Context, member *db.GroupMember) error {
	m.members = append(m.members, *member)
	return nil
}

func (m *mockStore) GetMembers(ctx context.Context, groupID string) ([]db.GroupMember, error) {
	var result []db.GroupMember
	for _, mem := range m.members {
		if mem.GroupID == groupID {
			result = append(result, mem)
		}
	}
	return result, nil
}

func (m *mockStore) InsertBlocks(ctx context.Context, blocks []db.AvailabilityBlock) error {
	m.insertBlocksCalls++
	if m.insertBlocksErr != nil {
		return m.insertBlocksErr
	}
	m.blocks = append(m.blocks, blocks...)
	return nil
}

func (m *mockStore) GetBlocks(ctx context.Context, groupID string) ([]db.AvailabilityBlock, error) {
	var result []db.AvailabilityBlock
	for _, b := range m.blocks {
		if b.GroupID == groupID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockStore) DeleteBlock(ctx context.Context, groupID, blockID string) error {
	for i, b := range m.blocks {
		if b.GroupID == groupID && b.ID == blockID {
			m.blocks = append(m.blocks[:i], m.blocks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("block %s: %w", blockID, db.ErrNotFound)
}

func (m *mockStore) InsertBlockedWindow(ctx context.Context, window *db.BlockedWindow) error {
	m.windows = append(m.windows, *window)
	return nil
}

func (m *mockStore) GetBlockedWindows(ctx context.Context, groupID string) ([]db.BlockedWindow, error) {
	var result []db.BlockedWindow
	for _, w := range m.windows {
		if w.GroupID == groupID {
			result = append(result, w)
		}
	}
	return result, nil
}

var (
	jan1  = civil.Date{Year: 2024, Month: time.January, Day: 1}
	jan2  = civil.Date{Year: 2024, Month: time.January, Day: 2}
	jan31 = civil.Date{Year: 2024, Month: time.January, Day: 31}
)

const testGroupID = "11111111-1111-1111-1111-111111111111"

// newGroupStore returns a store holding group ABC123 (January 2024) with alice as
// host and bob as member
func newGroupStore() *mockStore {
	return &mockStore{
		groups: []db.Group{{
			ID:                  testGroupID,
			Code:                "ABC123",
			Name:                "Test group",
			PlanningStart:       "2024-01-01",
			PlanningEnd:         "2024-01-31",
			BufferBeforeWorkMin: 20,
			SlotSizeMin:         60,
			YellowThreshold:     0.5,
		}},
		members: []db.GroupMember{
			{GroupID: testGroupID, UserID: "alice", Role: "host"},
			{GroupID: testGroupID, UserID: "bob", Role: "member"},
		},
	}
}
