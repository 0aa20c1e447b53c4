package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/group-planner/internal/config"
	"github.com/jakechorley/group-planner/pkg/core/recurrence"
	"github.com/jakechorley/group-planner/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg       *config.Config
	Database  db.Database
	Logger    *zap.Logger
	Ctx       context.Context
	Templates []recurrence.Template
}
