package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ordelia/order-insight-be/internal/core/messaging"
)

type HealthHandler struct {
	provider messaging.Provider
}

func NewHealthHandler(provider messaging.Provider) *HealthHandler {
	return &HealthHandler{provider: provider}
}

func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "order-insight-be",
		"provider": h.provider.GetProviderName(),
	})
}
