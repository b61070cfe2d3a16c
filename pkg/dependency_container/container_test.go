package dependency_container

import (
	"context"
	"testing"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/config"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/infra/logger"
	"github.com/NeuralTrust/AuthShield/pkg/infra/reputation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inMemoryConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			SecretKey:              "container-test-secret",
			TokenTTL:               time.Hour,
			BootstrapAdminEmail:    "Ops@Example.com",
			BootstrapAdminPassword: "bootstrap-secret",
		},
		Lockout: config.LockoutConfig{
			MaxFailedAttempts:      5,
			LockoutDurationMinutes: 15,
			AttemptWindowMinutes:   60,
			StorageTimeout:         time.Second,
			BreakerMaxFailures:     5,
			BreakerTimeout:         30 * time.Second,
			SweepInterval:          time.Hour,
		},
		Threat: map[string]interface{}{
			"auth_threshold":   "10",
			"cleanup_interval": "30m",
		},
	}
}

func TestNewContainer_InMemory(t *testing.T) {
	c, err := NewContainer(ContainerDI{Cfg: inMemoryConfig(), Logger: logger.NewNopLogger()})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.Nil(t, c.DB)
	assert.Nil(t, c.Redis)
	assert.IsType(t, &reputation.MemoryStore{}, c.ReputationStore)
	assert.Equal(t, 10, c.ThreatOptions.AuthThreshold)
	assert.Equal(t, 30*time.Minute, c.ThreatOptions.CleanupInterval)
	assert.Len(t, c.jobs(), 3)
	assert.Len(t, c.Middlewares().GetMiddlewares(), 5)

	ident, err := c.CredentialVerifier.Verify(context.Background(), "ops@example.com", "bootstrap-secret")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, ident.Role)

	token, err := c.JWTManager.CreateToken(ident.Key, ident.Role)
	require.NoError(t, err)
	claims, err := c.JWTManager.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
}

func TestNewContainer_InvalidThreatSettings(t *testing.T) {
	cfg := inMemoryConfig()
	cfg.Threat = map[string]interface{}{"auth_threshold": 0}

	_, err := NewContainer(ContainerDI{Cfg: cfg, Logger: logger.NewNopLogger()})
	assert.ErrorContains(t, err, "invalid threat settings")
}

func TestContainerJobs_PruneLoginHistory(t *testing.T) {
	c, err := NewContainer(ContainerDI{Cfg: inMemoryConfig(), Logger: logger.NewNopLogger()})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	for _, job := range c.jobs() {
		assert.NoError(t, job.Run(context.Background()), job.Name)
	}
}
