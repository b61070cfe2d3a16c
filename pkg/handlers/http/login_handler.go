package http

import (
	"errors"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/app/lockout"
	"github.com/NeuralTrust/AuthShield/pkg/app/threat"
	"github.com/NeuralTrust/AuthShield/pkg/domain/identity"
	"github.com/NeuralTrust/AuthShield/pkg/handlers/http/request"
	"github.com/NeuralTrust/AuthShield/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const invalidCredentialsMessage = "Invalid credentials"

type LoginResponse struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"`
	Identity  string        `json:"identity"`
	Role      identity.Role `json:"role"`
}

type loginHandler struct {
	logger   *logrus.Logger
	lockouts lockout.Service
	threats  threat.Engine
	verifier identity.CredentialVerifier
	tokens   jwt.Manager
	now      func() time.Time
}

func NewLoginHandler(
	logger *logrus.Logger,
	lockouts lockout.Service,
	threats threat.Engine,
	verifier identity.CredentialVerifier,
	tokens jwt.Manager,
) Handler {
	return &loginHandler{
		logger:   logger,
		lockouts: lockouts,
		threats:  threats,
		verifier: verifier,
		tokens:   tokens,
		now:      time.Now,
	}
}

// Handle @Summary Authenticate an identity
// @Description Verifies credentials under the lockout policy and returns a bearer token.
// Unknown, locked and mistyped identities all receive the same 401 response.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /api/auth/login [post]
func (h *loginHandler) Handle(c *fiber.Ctx) error {
	var req request.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx := c.UserContext()
	key := identity.NormalizeKey(req.Email)
	address := c.IP()
	agent := c.Get(fiber.HeaderUserAgent)

	if status := h.lockouts.IsLocked(ctx, key); status.Locked {
		h.logger.WithFields(logrus.Fields{
			"identity":       key,
			"source_address": address,
			"manual":         status.Manual,
		}).Info("login refused for locked identity")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": invalidCredentialsMessage})
	}

	ident, err := h.verifier.Verify(ctx, key, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			h.lockouts.RecordFailure(ctx, key, address, agent)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": invalidCredentialsMessage})
		}
		h.logger.WithError(err).WithField("identity", key).Error("credential verification failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "authentication temporarily unavailable"})
	}

	h.lockouts.RecordSuccess(ctx, ident.Key)
	h.threats.RecordLogin(ctx, ident.Key, address, agent, h.now())

	token, err := h.tokens.CreateToken(ident.Key, ident.Role)
	if err != nil {
		h.logger.WithError(err).Error("failed to issue token")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to issue token"})
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		Identity:  ident.Key,
		Role:      ident.Role,
	})
}
