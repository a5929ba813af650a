package handler

import (
	"go-commerce-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ResetConfirmationPhrase must be sent verbatim to wipe the database.
// The UI shows its own confirmation dialogs first; this is the final
// gate before the irreversible operation.
const ResetConfirmationPhrase = "DELETE ALL DATA"

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{service: s}
}

type resetRequest struct {
	Confirm string `json:"confirm"`
}

func (h *AdminHandler) ResetAllData(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Confirm != ResetConfirmationPhrase {
		return c.Status(400).JSON(fiber.Map{
			"error": "reset not confirmed: send {\"confirm\": \"" + ResetConfirmationPhrase + "\"}",
		})
	}

	if err := h.service.ResetAllData(); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "All data deleted, database re-initialized"})
}
