package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/group-planner/pkg/core/aggregator"
	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/db"
)

var (
	// ErrNotMember is returned when a user acts on a group they do not belong to
	ErrNotMember = errors.New("user is not a member of the group")
	// ErrAlreadyMember is returned when a user joins a group twice
	ErrAlreadyMember = errors.New("user is already a member of the group")
)

var validate = validator.New()

// codeAlphabet leaves out characters that are easy to misread (0/O, 1/I)
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// GroupParams holds the user-supplied settings of a new group
type GroupParams struct {
	Name                string  `validate:"required,max=100"`
	HostUserID          string  `validate:"required"`
	PlanningStart       string  `validate:"required,datetime=2006-01-02"`
	PlanningEnd         string  `validate:"required,datetime=2006-01-02"`
	BufferBeforeWorkMin int     `validate:"min=0,max=1440"`
	SlotSizeMin         int     `validate:"min=1,max=1440"`
	YellowThreshold     float64 `validate:"gt=0,max=1"`
}

// DefaultGroupParams returns params carrying the aggregator defaults
func DefaultGroupParams(name, host, start, end string) GroupParams {
	return GroupParams{
		Name:                name,
		HostUserID:          host,
		PlanningStart:       start,
		PlanningEnd:         end,
		BufferBeforeWorkMin: aggregator.DefaultBufferBeforeWorkMin,
		SlotSizeMin:         aggregator.DefaultSlotSizeMin,
		YellowThreshold:     aggregator.DefaultYellowThreshold,
	}
}

// DefineGroupStore defines the database operations needed to create a group
type DefineGroupStore interface {
	InsertGroup(ctx context.Context, group *db.Group) error
	InsertMember(ctx context.Context, member *db.GroupMember) error
}

// DefineGroup creates a group with a fresh join code and makes the host its first member
func DefineGroup(ctx context.Context, store DefineGroupStore, logger *zap.Logger, params GroupParams) (*model.Group, error) {
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid group parameters: %w", err)
	}

	start, err := civil.ParseDate(params.PlanningStart)
	if err != nil {
		return nil, fmt.Errorf("invalid planning start: %w", err)
	}
	end, err := civil.ParseDate(params.PlanningEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid planning end: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("planning end %s is before planning start %s", end, start)
	}

	group := model.Group{
		ID:                  uuid.New().String(),
		Code:                newGroupCode(),
		Name:                strings.TrimSpace(params.Name),
		PlanningStart:       start,
		PlanningEnd:         end,
		BufferBeforeWorkMin: params.BufferBeforeWorkMin,
		SlotSizeMin:         params.SlotSizeMin,
		YellowThreshold:     params.YellowThreshold,
	}

	logger.Debug("Creating group",
		zap.String("id", group.ID),
		zap.String("code", group.Code),
		zap.String("planning_start", start.String()),
		zap.String("planning_end", end.String()))

	record := db.GroupFromModel(group)
	if err := store.InsertGroup(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to insert group: %w", err)
	}

	host := &db.GroupMember{GroupID: group.ID, UserID: params.HostUserID, Role: string(model.RoleHost)}
	if err := store.InsertMember(ctx, host); err != nil {
		return nil, fmt.Errorf("failed to add host to group: %w", err)
	}

	logger.Info("Group created", zap.String("code", group.Code), zap.String("name", group.Name))

	return &group, nil
}

// GroupReader defines the read operations shared by the group services
type GroupReader interface {
	GetGroupByCode(ctx context.Context, code string) (*db.Group, error)
	GetMembers(ctx context.Context, groupID string) ([]db.GroupMember, error)
}

// AddMemberStore defines the database operations needed to join a group
type AddMemberStore interface {
	GroupReader
	InsertMember(ctx context.Context, member *db.GroupMember) error
}

// AddMember adds a user to the group with the given code
func AddMember(ctx context.Context, store AddMemberStore, logger *zap.Logger, groupCode, userID string) (*model.GroupMember, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	group, members, err := loadGroup(ctx, store, logger, groupCode)
	if err != nil {
		return nil, err
	}

	if isMember(members, userID) {
		return nil, fmt.Errorf("%s in group %s: %w", userID, group.Code, ErrAlreadyMember)
	}

	member := &db.GroupMember{GroupID: group.ID, UserID: userID, Role: string(model.RoleMember)}
	if err := store.InsertMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to insert member: %w", err)
	}

	logger.Info("Member added", zap.String("group", group.Code), zap.String("user_id", userID))

	result := member.ToModel()
	return &result, nil
}

// loadGroup fetches a group by code together with its members
func loadGroup(ctx context.Context, store GroupReader, logger *zap.Logger, code string) (model.Group, []model.GroupMember, error) {
	code = NormalizeGroupCode(code)
	logger.Debug("Loading group", zap.String("code", code))

	record, err := store.GetGroupByCode(ctx, code)
	if err != nil {
		return model.Group{}, nil, fmt.Errorf("failed to fetch group: %w", err)
	}

	group, err := record.ToModel()
	if err != nil {
		return model.Group{}, nil, err
	}

	memberRecords, err := store.GetMembers(ctx, group.ID)
	if err != nil {
		return model.Group{}, nil, fmt.Errorf("failed to fetch members: %w", err)
	}

	members := make([]model.GroupMember, len(memberRecords))
	for i, m := range memberRecords {
		members[i] = m.ToModel()
	}

	logger.Debug("Group loaded",
		zap.String("id", group.ID),
		zap.Int("member_count", len(members)))

	return group, members, nil
}

// requireMember returns ErrNotMember unless userID belongs to the group
func requireMember(group model.Group, members []model.GroupMember, userID string) error {
	if !isMember(members, userID) {
		return fmt.Errorf("%s in group %s: %w", userID, group.Code, ErrNotMember)
	}
	return nil
}

func isMember(members []model.GroupMember, userID string) bool {
	for _, m := range members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// NormalizeGroupCode uppercases a code and strips anything that is not a letter or digit
func NormalizeGroupCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// newGroupCode derives a short join code from a random UUID
func newGroupCode() string {
	id := uuid.New()
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = codeAlphabet[int(id[i])%len(codeAlphabet)]
	}
	return string(code)
}
