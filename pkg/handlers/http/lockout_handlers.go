package http

import (
	"net/url"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/app/lockout"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type lockoutHandler struct {
	logger   *logrus.Logger
	lockouts lockout.Service
}

func identityParam(c *fiber.Ctx) (string, bool) {
	raw, err := url.PathUnescape(c.Params("identity"))
	if err != nil {
		return "", false
	}
	key := identity.NormalizeKey(raw)
	return key, key != ""
}

type getLockoutStatsHandler lockoutHandler

func NewGetLockoutStatsHandler(logger *logrus.Logger, lockouts lockout.Service) Handler {
	return &getLockoutStatsHandler{logger: logger, lockouts: lockouts}
}

// Handle @Summary Lockout statistics
// @Tags Lockouts
// @Produce json
// @Success 200 {object} lockout.Stats
// @Router /api/v1/admin/lockouts/stats [get]
func (h *getLockoutStatsHandler) Handle(c *fiber.Ctx) error {
	stats, err := h.lockouts.Stats(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("failed to compute lockout stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute lockout stats"})
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

type listLockoutsHandler lockoutHandler

func NewListLockoutsHandler(logger *logrus.Logger, lockouts lockout.Service) Handler {
	return &listLockoutsHandler{logger: logger, lockouts: lockouts}
}

func (h *listLockoutsHandler) Handle(c *fiber.Ctx) error {
	locked, err := h.lockouts.ListLocked(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("failed to list locked identities")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list locked identities"})
	}
	if locked == nil {
		locked = []lockout.LockedIdentity{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"identities": locked,
		"count":      len(locked),
	})
}

type getLockoutHandler lockoutHandler

func NewGetLockoutHandler(logger *logrus.Logger, lockouts lockout.Service) Handler {
	return &getLockoutHandler{logger: logger, lockouts: lockouts}
}

// Handle reports the lock status of one identity. Unknown identities get
// the status of an unlocked identity.
func (h *getLockoutHandler) Handle(c *fiber.Ctx) error {
	key, ok := identityParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "identity is required"})
	}
	status := h.lockouts.IsLocked(c.UserContext(), key)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"identity": key,
		"status":   status,
	})
}

type lockIdentityHandler lockoutHandler

func NewLockIdentityHandler(logger *logrus.Logger, lockouts lockout.Service) Handler {
	return &lockIdentityHandler{logger: logger, lockouts: lockouts}
}

// Handle @Summary Manually lock an identity
// @Tags Lockouts
// @Accept json
// @Param identity path string true "Identity key"
// @Param request body request.LockRequest true "Lock reason and optional duration"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Identity not found"
// @Router /api/v1/admin/lockouts/{identity}/lock [post]
func (h *lockIdentityHandler) Handle(c *fiber.Ctx) error {
	key, ok := identityParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "identity is required"})
	}
	var req request.LockRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	actor := actorOf(c)
	if !h.lockouts.Lock(c.UserContext(), key, req.Reason, actor, req.Duration()) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "identity not found or lock failed"})
	}

	resp := fiber.Map{"identity": key, "locked": true, "locked_by": actor}
	if d := req.Duration(); d > 0 {
		resp["duration_minutes"] = int(d / time.Minute)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

type unlockIdentityHandler lockoutHandler

func NewUnlockIdentityHandler(logger *logrus.Logger, lockouts lockout.Service) Handler {
	return &unlockIdentityHandler{logger: logger, lockouts: lockouts}
}

func (h *unlockIdentityHandler) Handle(c *fiber.Ctx) error {
	key, ok := identityParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "identity is required"})
	}
	var req request.UnlockRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	actor := actorOf(c)
	if !h.lockouts.Unlock(c.UserContext(), key, req.Reason, actor) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "identity not found or unlock failed"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"identity": key, "locked": false, "unlocked_by": actor})
}

type sweepLockoutsHandler lockoutHandler

func NewSweepLockoutsHandler(logger *logrus.Logger, lockouts lockout.Service) Handler {
	return &sweepLockoutsHandler{logger: logger, lockouts: lockouts}
}

func (h *sweepLockoutsHandler) Handle(c *fiber.Ctx) error {
	cleared, err := h.lockouts.SweepExpired(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("lockout sweep failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "lockout sweep failed"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"cleared": cleared})
}
