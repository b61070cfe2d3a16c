package http

import (
	"net"
	"net/url"

	"github.com/NeuralTrust/AuthShield/pkg/app/threat"
	domain "github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type threatHandler struct {
	logger  *logrus.Logger
	threats threat.Engine
}

type getThreatStatsHandler threatHandler

func NewGetThreatStatsHandler(logger *logrus.Logger, threats threat.Engine) Handler {
	return &getThreatStatsHandler{logger: logger, threats: threats}
}

// Handle @Summary Threat statistics
// @Tags Threats
// @Produce json
// @Success 200 {object} threat.Stats
// @Router /api/v1/admin/threats/stats [get]
func (h *getThreatStatsHandler) Handle(c *fiber.Ctx) error {
	stats, err := h.threats.Stats(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("failed to compute threat stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute threat stats"})
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

type listBlockedHandler threatHandler

func NewListBlockedHandler(logger *logrus.Logger, threats threat.Engine) Handler {
	return &listBlockedHandler{logger: logger, threats: threats}
}

func (h *listBlockedHandler) Handle(c *fiber.Ctx) error {
	blocked, err := h.threats.ListBlocked(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("failed to list blocked addresses")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list blocked addresses"})
	}
	if blocked == nil {
		blocked = []domain.BlockEntry{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"addresses": blocked, "count": len(blocked)})
}

type listSuspiciousHandler threatHandler

func NewListSuspiciousHandler(logger *logrus.Logger, threats threat.Engine) Handler {
	return &listSuspiciousHandler{logger: logger, threats: threats}
}

func (h *listSuspiciousHandler) Handle(c *fiber.Ctx) error {
	suspicious, err := h.threats.ListSuspicious(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("failed to list suspicious addresses")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list suspicious addresses"})
	}
	if suspicious == nil {
		suspicious = []string{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"addresses": suspicious, "count": len(suspicious)})
}

type unblockAddressHandler threatHandler

func NewUnblockAddressHandler(logger *logrus.Logger, threats threat.Engine) Handler {
	return &unblockAddressHandler{logger: logger, threats: threats}
}

// Handle @Summary Unblock one address
// @Tags Threats
// @Param address path string true "Source address"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Not an IP address"
// @Router /api/v1/admin/threats/blocked/{address} [delete]
func (h *unblockAddressHandler) Handle(c *fiber.Ctx) error {
	address, err := url.PathUnescape(c.Params("address"))
	if err != nil || net.ParseIP(address) == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "address must be an IP address"})
	}
	if err := h.threats.Unblock(c.UserContext(), address); err != nil {
		h.logger.WithError(err).WithField("source_address", address).Error("failed to unblock address")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to unblock address"})
	}
	h.logger.WithFields(logrus.Fields{
		"source_address": address,
		"actor":          actorOf(c),
	}).Info("address unblocked")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"address": address, "blocked": false})
}

type clearBlocksHandler threatHandler

func NewClearBlocksHandler(logger *logrus.Logger, threats threat.Engine) Handler {
	return &clearBlocksHandler{logger: logger, threats: threats}
}

func (h *clearBlocksHandler) Handle(c *fiber.Ctx) error {
	if err := h.threats.ClearAllBlocks(c.UserContext()); err != nil {
		h.logger.WithError(err).Error("failed to clear blocks")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to clear blocks"})
	}
	h.logger.WithField("actor", actorOf(c)).Warn("all blocks and suspicious marks cleared")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "all blocks cleared"})
}

type threatCleanupHandler threatHandler

func NewThreatCleanupHandler(logger *logrus.Logger, threats threat.Engine) Handler {
	return &threatCleanupHandler{logger: logger, threats: threats}
}

func (h *threatCleanupHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.threats.Cleanup(c.UserContext()))
}
