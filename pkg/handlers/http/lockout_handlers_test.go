package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NeuralTrust/AuthShield/mocks"
	"github.com/NeuralTrust/AuthShield/pkg/app/lockout"
	"github.com/NeuralTrust/AuthShield/pkg/common"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	handlers "github.com/NeuralTrust/AuthShield/pkg/handlers/http"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func asAdmin(c *fiber.Ctx) error {
	c.Locals(common.PrincipalContextKey, &threat.Principal{Identity: "ops@example.com", Role: identity.RoleAdmin})
	return c.Next()
}

func newLockoutApp(t *testing.T) (*fiber.App, *mocks.LockoutService) {
	svc := mocks.NewLockoutService(t)
	logger := logrus.New()
	app := fiber.New()
	app.Use(asAdmin)
	lockouts := app.Group("/lockouts")
	lockouts.Get("/stats", handlers.NewGetLockoutStatsHandler(logger, svc).Handle)
	lockouts.Post("/sweep", handlers.NewSweepLockoutsHandler(logger, svc).Handle)
	lockouts.Get("", handlers.NewListLockoutsHandler(logger, svc).Handle)
	lockouts.Get("/:identity", handlers.NewGetLockoutHandler(logger, svc).Handle)
	lockouts.Post("/:identity/lock", handlers.NewLockIdentityHandler(logger, svc).Handle)
	lockouts.Post("/:identity/unlock", handlers.NewUnlockIdentityHandler(logger, svc).Handle)
	return app, svc
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestLockoutHandlers_Stats(t *testing.T) {
	app, svc := newLockoutApp(t)
	svc.On("Stats", mock.Anything).Return(lockout.Stats{TotalLocked: 3, ManualLocks: 1, AutomaticLocks: 2}, nil).Once()

	resp, err := app.Test(jsonRequest(http.MethodGet, "/lockouts/stats", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.EqualValues(t, 3, body["total_locked"])
	assert.EqualValues(t, 1, body["manual_locks"])

	svc.On("Stats", mock.Anything).Return(lockout.Stats{}, errors.New("db down")).Once()
	resp, err = app.Test(jsonRequest(http.MethodGet, "/lockouts/stats", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestLockoutHandlers_ListAndGet(t *testing.T) {
	app, svc := newLockoutApp(t)
	until := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.On("ListLocked", mock.Anything).Return([]lockout.LockedIdentity{{Key: "ana@example.com", LockedUntil: &until}}, nil)
	svc.On("IsLocked", mock.Anything, "ana@example.com").Return(lockout.LockStatus{Locked: true, LockedUntil: &until})

	resp, err := app.Test(jsonRequest(http.MethodGet, "/lockouts", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decode(t, resp)["count"])

	resp, err = app.Test(jsonRequest(http.MethodGet, "/lockouts/Ana@Example.com", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "ana@example.com", body["identity"])
	assert.Equal(t, true, body["status"].(map[string]interface{})["locked"])
}

func TestLockoutHandlers_Lock(t *testing.T) {
	app, svc := newLockoutApp(t)
	svc.On("Lock", mock.Anything, "ana@example.com", "suspected takeover", "ops@example.com", 30*time.Minute).Return(true).Once()
	svc.On("Lock", mock.Anything, "ghost@example.com", "", "ops@example.com", time.Duration(0)).Return(false).Once()

	resp, err := app.Test(jsonRequest(http.MethodPost, "/lockouts/ana@example.com/lock", `{"reason":"suspected takeover","duration_minutes":30}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "ops@example.com", body["locked_by"])
	assert.EqualValues(t, 30, body["duration_minutes"])

	resp, err = app.Test(jsonRequest(http.MethodPost, "/lockouts/ghost@example.com/lock", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/lockouts/ana@example.com/lock", `{"duration_minutes":-5}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLockoutHandlers_UnlockAndSweep(t *testing.T) {
	app, svc := newLockoutApp(t)
	svc.On("Unlock", mock.Anything, "ana@example.com", "verified by phone", "ops@example.com").Return(true)
	svc.On("SweepExpired", mock.Anything).Return(int64(4), nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/lockouts/ana@example.com/unlock", `{"reason":"verified by phone"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decode(t, resp)["locked"])

	resp, err = app.Test(jsonRequest(http.MethodPost, "/lockouts/sweep", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 4, decode(t, resp)["cleared"])
}
