package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/group-planner/pkg/core/model"
	"github.com/jakechorley/group-planner/pkg/core/timeutil"
)

// RecurringBlock is a repeating availability block applied to a member of a group
// whenever slots are computed
type RecurringBlock struct {
	GroupCode string `yaml:"groupCode" validate:"required"`
	UserID    string `yaml:"userID" validate:"required"`
	Kind      string `yaml:"kind" validate:"required,oneof=WORK UNAVAILABLE PREFERRED"`
	RRule     string `yaml:"rrule" validate:"required"`
	Start     string `yaml:"start" validate:"required"`
	End       string `yaml:"end" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL                string           `yaml:"databaseURL"`
	DefaultBufferBeforeWorkMin int              `yaml:"defaultBufferBeforeWorkMin" validate:"min=0,max=1440"`
	DefaultSlotSizeMin         int              `yaml:"defaultSlotSizeMin" validate:"min=0,max=1440"`
	DefaultYellowThreshold     float64          `yaml:"defaultYellowThreshold" validate:"omitempty,gt=0,max=1"`
	DefaultTopN                int              `yaml:"defaultTopN" validate:"min=0"`
	RecurringBlocks            []RecurringBlock `yaml:"recurringBlocks,omitempty" validate:"dive"`
}

const (
	defaultBufferBeforeWorkMin = 20
	defaultSlotSizeMin         = 30
	defaultYellowThreshold     = 0.75
	defaultTopN                = 10

	databaseURLEnvVar = "DATABASE_URL"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from planner_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return loadNamed("planner_config.yaml")
}

// LoadWithEnv loads the configuration for an environment
// For example, env="test" will look for "test_planner_config.yaml"
func LoadWithEnv(env string) (*Config, error) {
	return loadNamed(fmt.Sprintf("%s_planner_config.yaml", env))
}

func loadNamed(name string) (*Config, error) {
	configPath, err := findConfigFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := resolveDatabaseURL(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, rrule syntax and recurring block times
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("config validation failed: databaseURL is empty and %s is not set", databaseURLEnvVar)
	}

	for i, rb := range cfg.RecurringBlocks {
		if _, err := rrule.StrToRRule(rb.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurringBlocks[%d]: %w", i, err)
		}
		if _, _, err := rb.Minutes(); err != nil {
			return fmt.Errorf("invalid time in recurringBlocks[%d]: %w", i, err)
		}
	}

	return nil
}

// Minutes returns the block's start and end as minutes from midnight.
// An end of 00:00 or 24:00 is end of day.
func (rb RecurringBlock) Minutes() (int, int, error) {
	start, err := timeutil.ToMinutes(rb.Start)
	if err != nil {
		return 0, 0, err
	}

	if rb.End == "24:00" {
		return start, timeutil.MinutesPerDay, nil
	}
	end, err := timeutil.ToMinutes(rb.End)
	if err != nil {
		return 0, 0, err
	}
	if end == 0 {
		end = timeutil.MinutesPerDay
	}
	if start == end {
		return 0, 0, fmt.Errorf("start and end are both %s", rb.Start)
	}
	return start, end, nil
}

// BlockKind returns the block kind as a domain value
func (rb RecurringBlock) BlockKind() model.BlockKind {
	return model.BlockKind(rb.Kind)
}

// resolveDatabaseURL falls back to DATABASE_URL, reading a .env file in the working
// directory first if there is one
func resolveDatabaseURL(cfg *Config) error {
	if cfg.DatabaseURL != "" {
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	cfg.DatabaseURL = os.Getenv(databaseURLEnvVar)
	return nil
}

// applyDefaults fills tuning values left at zero
func applyDefaults(cfg *Config) {
	if cfg.DefaultBufferBeforeWorkMin == 0 {
		cfg.DefaultBufferBeforeWorkMin = defaultBufferBeforeWorkMin
	}
	if cfg.DefaultSlotSizeMin == 0 {
		cfg.DefaultSlotSizeMin = defaultSlotSizeMin
	}
	if cfg.DefaultYellowThreshold == 0 {
		cfg.DefaultYellowThreshold = defaultYellowThreshold
	}
	if cfg.DefaultTopN == 0 {
		cfg.DefaultTopN = defaultTopN
	}
}

// findConfigFile searches for the named config file in current directory and home directory
func findConfigFile(configFileName string) (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
