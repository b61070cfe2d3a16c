package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NeuralTrust/AuthShield/mocks"
	"github.com/NeuralTrust/AuthShield/pkg/app/lockout"
	handlers "github.com/NeuralTrust/AuthShield/pkg/handlers/http"
	"github.com/NeuralTrust/AuthShield/pkg/infra/auth/jwt"
	"github.com/NeuralTrust/AuthShield/pkg/middleware"
	"github.com/NeuralTrust/AuthShield/pkg/server/router"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type countingMiddleware struct{ hits int }

func (m *countingMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.hits++
		return c.Next()
	}
}

func TestAdminRouter_Routes(t *testing.T) {
	logger := logrus.New()
	tokens := mocks.NewJWTManager(t)
	lockouts := mocks.NewLockoutService(t)
	threats := mocks.NewThreatEngine(t)
	verifier := mocks.NewCredentialVerifier(t)

	counter := &countingMiddleware{}
	transport := handlers.HandlerTransport{
		LoginHandler:           handlers.NewLoginHandler(logger, lockouts, threats, verifier, tokens),
		GetLockoutStatsHandler: handlers.NewGetLockoutStatsHandler(logger, lockouts),
		ListLockoutsHandler:    handlers.NewListLockoutsHandler(logger, lockouts),
		GetLockoutHandler:      handlers.NewGetLockoutHandler(logger, lockouts),
		LockIdentityHandler:    handlers.NewLockIdentityHandler(logger, lockouts),
		UnlockIdentityHandler:  handlers.NewUnlockIdentityHandler(logger, lockouts),
		SweepLockoutsHandler:   handlers.NewSweepLockoutsHandler(logger, lockouts),
		GetThreatStatsHandler:  handlers.NewGetThreatStatsHandler(logger, threats),
		ListBlockedHandler:     handlers.NewListBlockedHandler(logger, threats),
		ListSuspiciousHandler:  handlers.NewListSuspiciousHandler(logger, threats),
		UnblockAddressHandler:  handlers.NewUnblockAddressHandler(logger, threats),
		ClearBlocksHandler:     handlers.NewClearBlocksHandler(logger, threats),
		ThreatCleanupHandler:   handlers.NewThreatCleanupHandler(logger, threats),
		GetVersionHandler:      handlers.NewGetVersionHandler(logger),
	}
	r := router.NewAdminRouter(
		middleware.NewTransport(counter),
		middleware.NewAdminAuthMiddleware(logger, tokens),
		transport,
	)

	app := fiber.New()
	require.NoError(t, r.BuildRoutes(app))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/version", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, counter.hits)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/admin/lockouts/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, counter.hits)

	tokens.On("DecodeToken", "admin-token").Return(&jwt.Claims{
		Role:             "admin",
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: "ops@example.com"},
	}, nil)
	lockouts.On("Stats", mock.Anything).Return(lockout.Stats{TotalLocked: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/lockouts/stats", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, counter.hits)
}

func TestAdminRouter_RequiresLoginAndAuth(t *testing.T) {
	r := router.NewAdminRouter(nil, nil, handlers.HandlerTransport{})
	assert.ErrorIs(t, r.BuildRoutes(fiber.New()), router.ErrInvalidHandlerTransport)
}
