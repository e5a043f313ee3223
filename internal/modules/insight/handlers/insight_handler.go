package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ordelia/order-insight-be/internal/modules/insight/services"
)

type InsightHandler struct {
	insightService *services.InsightService
}

func NewInsightHandler(insightService *services.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// windowDays reads the optional ?days= query param. Zero means "use the
// configured default window".
func windowDays(c *fiber.Ctx) int {
	days, err := strconv.Atoi(c.Query("days", "0"))
	if err != nil || days < 0 {
		return 0
	}
	return days
}

// GetProductTrends returns growing/declining products, price movements and
// top sellers over the trailing window.
func (h *InsightHandler) GetProductTrends(c *fiber.Ctx) error {
	report, err := h.insightService.ProductTrends(windowDays(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

// GetCustomerPatterns returns per-customer metrics, cohorts and the frequency
// distribution.
func (h *InsightHandler) GetCustomerPatterns(c *fiber.Ctx) error {
	report, err := h.insightService.CustomerPatterns(windowDays(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}

// GetRecommendations returns product recommendations. With a customer_id the
// result is personalized when purchase history exists, otherwise it falls
// back to popularity.
func (h *InsightHandler) GetRecommendations(c *fiber.Ctx) error {
	customerID := c.Query("customer_id")

	result, err := h.insightService.Recommendations(customerID, windowDays(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(result)
}

// GetSummary returns the dashboard stat cards and daily revenue chart.
func (h *InsightHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.insightService.Summary(windowDays(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(summary)
}
