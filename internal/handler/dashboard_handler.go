package handler

import (
	"strconv"

	"go-commerce-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetSalesTrend returns monthly sales totals for chart rendering.
// Query params: months (default 12)
func (h *DashboardHandler) GetSalesTrend(c *fiber.Ctx) error {
	months, err := strconv.Atoi(c.Query("months", "12"))
	if err != nil || months <= 0 {
		months = 12
	}

	trend, err := h.service.GetMonthlySalesTrend(months)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"months": months,
		"data":   trend,
	})
}

// GetTopProducts returns the best sellers by quantity sold.
// Query params: limit (default 5)
func (h *DashboardHandler) GetTopProducts(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	top, err := h.service.GetTopSellingProducts(limit)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(top)
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stats)
}
