package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Lockout.MaxFailedAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Lockout.LockoutDuration())
	assert.Equal(t, 60*time.Minute, cfg.Lockout.AttemptWindow())
	assert.Equal(t, 2*time.Second, cfg.Lockout.StorageTimeout)
	assert.Equal(t, 2*time.Second, cfg.Lockout.LockWait)
	assert.Equal(t, time.Hour, cfg.Lockout.SweepInterval)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 50, cfg.Threat["auth_threshold"])
	assert.Equal(t, "2s", cfg.Threat["storage_timeout"])
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("LOCKOUT_MAX_FAILED_ATTEMPTS", "7")
	t.Setenv("LOCKOUT_LOCKOUT_DURATION_MINUTES", "30")
	t.Setenv("LOCKOUT_ATTEMPT_WINDOW_MINUTES", "10")
	t.Setenv("THREAT_AUTH_THRESHOLD", "25")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Lockout.MaxFailedAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Lockout.LockoutDuration())
	assert.Equal(t, 10*time.Minute, cfg.Lockout.AttemptWindow())
	assert.Equal(t, "25", cfg.Threat["auth_threshold"])
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("lockout:\n  max_failed_attempts: 3\nserver:\n  admin_port: 9000\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Lockout.MaxFailedAttempts)
	assert.Equal(t, 9000, cfg.Server.AdminPort)
	assert.Equal(t, 15, cfg.Lockout.LockoutDurationMinutes)
}

func TestLoad_RejectsNonPositiveLimits(t *testing.T) {
	t.Setenv("LOCKOUT_MAX_FAILED_ATTEMPTS", "0")

	_, err := config.Load(t.TempDir())
	assert.ErrorIs(t, err, config.ErrInvalidMaxAttempts)
}
