package dependency_container

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/app/janitor"
	"github.com/NeuralTrust/AuthShield/pkg/app/lockout"
	"github.com/NeuralTrust/AuthShield/pkg/app/threat"
	"github.com/NeuralTrust/AuthShield/pkg/config"
	domainErrors "github.com/NeuralTrust/AuthShield/pkg/domain/errors"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/domain/loginevent"
	domainThreat "github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	handlers "github.com/NeuralTrust/AuthShield/pkg/handlers/http"
	"github.com/NeuralTrust/AuthShield/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/AuthShield/pkg/infra/breaker"
	"github.com/NeuralTrust/AuthShield/pkg/infra/cache"
	"github.com/NeuralTrust/AuthShield/pkg/infra/database"
	"github.com/NeuralTrust/AuthShield/pkg/infra/prometheus"
	"github.com/NeuralTrust/AuthShield/pkg/infra/repository"
	"github.com/NeuralTrust/AuthShield/pkg/infra/reputation"
	"github.com/NeuralTrust/AuthShield/pkg/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	// registers the schema migrations
	_ "github.com/NeuralTrust/AuthShield/pkg/infra/migrations"
)

const (
	reputationKeyPrefix = "authshield:reputation"
	loginHistoryJob     = "login-history-prune"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *database.DB
	Redis  *redis.Client

	IdentityRepository   identity.Repository
	LoginEventRepository loginevent.Repository
	ReputationStore      domainThreat.ReputationStore
	CredentialVerifier   identity.CredentialVerifier
	JWTManager           jwt.Manager

	LockoutService lockout.Service
	ThreatEngine   threat.Engine
	ThreatOptions  threat.Options
	Janitor        *janitor.Janitor

	PanicRecoverMiddleware middleware.Middleware
	MetricsMiddleware      middleware.Middleware
	SecurityMiddleware     middleware.Middleware
	PrincipalMiddleware    middleware.Middleware
	ThreatMiddleware       middleware.Middleware
	AdminAuthMiddleware    middleware.Middleware
	HandlerTransport       handlers.HandlerTransport
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg
	logger := di.Logger
	c := &Container{Config: cfg, Logger: logger}

	prometheus.Initialize()

	if err := c.initStorage(); err != nil {
		c.Close()
		return nil, err
	}

	verifier, err := repository.NewIdentityVerifier(c.IdentityRepository)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.CredentialVerifier = verifier
	c.JWTManager = jwt.NewJwtManager(&cfg.Server)

	c.LockoutService = lockout.NewService(logger, c.IdentityRepository, lockout.Options{
		Policy: lockout.Policy{
			MaxFailedAttempts: cfg.Lockout.MaxFailedAttempts,
			LockoutDuration:   cfg.Lockout.LockoutDuration(),
			AttemptWindow:     cfg.Lockout.AttemptWindow(),
		},
		StorageTimeout: cfg.Lockout.StorageTimeout,
		LockWait:       cfg.Lockout.LockWait,
		Breaker: breaker.NewCircuitBreaker(logger, breaker.Settings{
			Name:        "identity-store",
			Timeout:     cfg.Lockout.BreakerTimeout,
			MaxFailures: cfg.Lockout.BreakerMaxFailures,
			Ignore:      domainErrors.IsNotFoundError,
		}),
	})

	opts, err := threat.NewOptions(cfg.Threat)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("invalid threat settings: %w", err)
	}
	c.ThreatOptions = opts
	c.ThreatEngine, err = threat.NewEngine(logger, c.ReputationStore, c.LoginEventRepository, opts)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize threat engine: %w", err)
	}

	c.Janitor = janitor.New(logger, c.jobs()...)

	c.PanicRecoverMiddleware = middleware.NewPanicRecoverMiddleware(logger)
	c.MetricsMiddleware = middleware.NewMetricsMiddleware(logger)
	c.SecurityMiddleware = middleware.NewSecurityMiddleware(31536000)
	c.PrincipalMiddleware = middleware.NewPrincipalMiddleware(logger, c.JWTManager)
	c.ThreatMiddleware = middleware.NewThreatMiddleware(logger, c.ThreatEngine)
	c.AdminAuthMiddleware = middleware.NewAdminAuthMiddleware(logger, c.JWTManager)

	c.HandlerTransport = handlers.HandlerTransport{
		LoginHandler: handlers.NewLoginHandler(
			logger, c.LockoutService, c.ThreatEngine, c.CredentialVerifier, c.JWTManager,
		),
		// Lockouts
		GetLockoutStatsHandler: handlers.NewGetLockoutStatsHandler(logger, c.LockoutService),
		ListLockoutsHandler:    handlers.NewListLockoutsHandler(logger, c.LockoutService),
		GetLockoutHandler:      handlers.NewGetLockoutHandler(logger, c.LockoutService),
		LockIdentityHandler:    handlers.NewLockIdentityHandler(logger, c.LockoutService),
		UnlockIdentityHandler:  handlers.NewUnlockIdentityHandler(logger, c.LockoutService),
		SweepLockoutsHandler:   handlers.NewSweepLockoutsHandler(logger, c.LockoutService),
		// Threats
		GetThreatStatsHandler: handlers.NewGetThreatStatsHandler(logger, c.ThreatEngine),
		ListBlockedHandler:    handlers.NewListBlockedHandler(logger, c.ThreatEngine),
		ListSuspiciousHandler: handlers.NewListSuspiciousHandler(logger, c.ThreatEngine),
		UnblockAddressHandler: handlers.NewUnblockAddressHandler(logger, c.ThreatEngine),
		ClearBlocksHandler:    handlers.NewClearBlocksHandler(logger, c.ThreatEngine),
		ThreatCleanupHandler:  handlers.NewThreatCleanupHandler(logger, c.ThreatEngine),

		GetVersionHandler: handlers.NewGetVersionHandler(logger),
	}

	return c, nil
}

// Middlewares is the chain every /api request passes through, outermost
// first.
func (c *Container) Middlewares() *middleware.Transport {
	return middleware.NewTransport(
		c.PanicRecoverMiddleware,
		c.MetricsMiddleware,
		c.SecurityMiddleware,
		c.PrincipalMiddleware,
		c.ThreatMiddleware,
	)
}

func (c *Container) initStorage() error {
	cfg := c.Config

	if cfg.Database.Enabled {
		db, err := database.NewDB(c.Logger, &database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		c.IdentityRepository = repository.NewIdentityRepository(db.DB)
		c.LoginEventRepository = repository.NewLoginEventRepository(db.DB)
	} else {
		c.Logger.Warn("database disabled, identities and login history are kept in memory")
		memory := repository.NewMemoryIdentityRepository()
		if err := seedBootstrapAdmin(memory, cfg.Server); err != nil {
			return err
		}
		c.IdentityRepository = memory
		c.LoginEventRepository = repository.NewMemoryLoginEventRepository()
	}

	if cfg.Redis.Enabled {
		client, err := cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, c.Logger)
		if err != nil {
			return err
		}
		c.Redis = client
		c.ReputationStore = reputation.NewRedisStore(client, reputationKeyPrefix)
	} else {
		c.ReputationStore = reputation.NewMemoryStore()
	}
	return nil
}

func seedBootstrapAdmin(repo *repository.MemoryIdentityRepository, cfg config.ServerConfig) error {
	if cfg.BootstrapAdminEmail == "" || cfg.BootstrapAdminPassword == "" {
		return nil
	}
	hash, err := repository.HashSecret(cfg.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin secret: %w", err)
	}
	repo.Save(&identity.Identity{
		Key:          cfg.BootstrapAdminEmail,
		Role:         identity.RoleAdmin,
		PasswordHash: hash,
	})
	return nil
}

func (c *Container) jobs() []janitor.Job {
	lookback := c.ThreatOptions.BaselineLookback
	return []janitor.Job{
		{
			Name:     "lockout-sweep",
			Interval: c.Config.Lockout.SweepInterval,
			Timeout:  time.Minute,
			Run: func(ctx context.Context) error {
				_, err := c.LockoutService.SweepExpired(ctx)
				return err
			},
		},
		{
			Name:     "threat-cleanup",
			Interval: c.ThreatOptions.CleanupInterval,
			Timeout:  time.Minute,
			Run: func(ctx context.Context) error {
				c.ThreatEngine.Cleanup(ctx)
				return nil
			},
		},
		{
			Name:     loginHistoryJob,
			Interval: c.ThreatOptions.CleanupInterval,
			Timeout:  time.Minute,
			Run: func(ctx context.Context) error {
				removed, err := c.LoginEventRepository.DeleteBefore(ctx, time.Now().Add(-lookback))
				if err != nil {
					return err
				}
				prometheus.CleanupRemovedTotal.WithLabelValues(loginHistoryJob).Add(float64(removed))
				return nil
			},
		},
	}
}

func (c *Container) Close() {
	if c.Janitor != nil {
		c.Janitor.Stop()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.WithError(err).Warn("failed to close redis client")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.WithError(err).Warn("failed to close database")
		}
	}
}
