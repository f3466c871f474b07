// Package config loads the deployment configuration injected at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendEnv    = "env"
	BackendRedis  = "redis"
)

// Tutor strategies.
const (
	StrategyRules = "rules"
	StrategyLLM   = "llm"
)

// Config is read from HOMEWORKPAL_* variables. LLM provider keys are read
// separately by llm.ConfigFromEnv.
type Config struct {
	// Backend selects where assignments live: sqlite, file, env or redis.
	Backend string `envconfig:"BACKEND" default:"sqlite"`

	// DBPath overrides the SQLite location. Empty means the XDG default.
	DBPath string `envconfig:"DB"`

	AssignmentsFile string `envconfig:"ASSIGNMENTS_FILE" default:"assignments.json"`
	AssignmentsEnv  string `envconfig:"ASSIGNMENTS_ENV" default:"HOMEWORKPAL_ASSIGNMENTS"`
	RedisURL        string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	RedisKey        string `envconfig:"REDIS_KEY" default:"homeworkpal:assignments"`

	// ReadOnly refuses writes regardless of backend.
	ReadOnly bool `envconfig:"READ_ONLY"`

	Narration bool   `envconfig:"NARRATION"`
	Voice     string `envconfig:"VOICE" default:"alloy"`

	Strategy        string  `envconfig:"STRATEGY" default:"llm"`
	RecallThreshold float64 `envconfig:"RECALL_THRESHOLD" default:"0.6"`

	HTTPAddr    string   `envconfig:"HTTP_ADDR" default:":8080"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	LogMode string `envconfig:"LOG_MODE" default:"dev"`
	LogFile string `envconfig:"LOG_FILE"`
}

// Load reads an optional .env file and then the environment. Variables
// already set take precedence over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("homeworkpal", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(c.Backend)
	switch c.Backend {
	case BackendSQLite, BackendFile, BackendEnv, BackendRedis:
	default:
		return fmt.Errorf("unknown backend %q (want sqlite, file, env or redis)", c.Backend)
	}

	c.Strategy = strings.ToLower(c.Strategy)
	switch c.Strategy {
	case StrategyRules, StrategyLLM:
	default:
		return fmt.Errorf("unknown strategy %q (want rules or llm)", c.Strategy)
	}

	if c.RecallThreshold <= 0 || c.RecallThreshold > 1 {
		return fmt.Errorf("recall threshold %v out of range (0, 1]", c.RecallThreshold)
	}
	return nil
}
