package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ordelia/order-insight-be/internal/modules/insight/services"
	"github.com/ordelia/order-insight-be/internal/shared/utils"
)

type WebhookHandler struct {
	webhookService *services.WebhookService
}

func NewWebhookHandler(webhookService *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// ReceiveOrder accepts an order webhook from the storefront, persists it and
// queues the buyer acknowledgment.
func (h *WebhookHandler) ReceiveOrder(c *fiber.Ctx) error {
	var req services.IngestOrderRequest
	if err := c.BodyParser(&req); err != nil {
		utils.LogWarn("❌ Failed to parse order webhook", map[string]interface{}{
			"error": err.Error(),
		})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid payload",
		})
	}

	order, err := h.webhookService.IngestOrder(&req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "received",
		"order": fiber.Map{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"total_amount": order.TotalAmount,
		},
	})
}
