package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, StrategyLLM, cfg.Strategy)
	assert.Equal(t, 0.6, cfg.RecallThreshold)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.ReadOnly)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOMEWORKPAL_BACKEND", "Redis")
	t.Setenv("HOMEWORKPAL_STRATEGY", "rules")
	t.Setenv("HOMEWORKPAL_READ_ONLY", "true")
	t.Setenv("HOMEWORKPAL_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, StrategyRules, cfg.Strategy)
	assert.True(t, cfg.ReadOnly)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HOMEWORKPAL_BACKEND=file\nHOMEWORKPAL_ASSIGNMENTS_FILE=seed.json\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("HOMEWORKPAL_BACKEND")
		os.Unsetenv("HOMEWORKPAL_ASSIGNMENTS_FILE")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "seed.json", cfg.AssignmentsFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"backend", Config{Backend: "mongo", Strategy: StrategyRules, RecallThreshold: 0.5}},
		{"strategy", Config{Backend: BackendFile, Strategy: "magic", RecallThreshold: 0.5}},
		{"threshold", Config{Backend: BackendFile, Strategy: StrategyRules, RecallThreshold: 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
