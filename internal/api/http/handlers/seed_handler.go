package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentdesk/ats-service/internal/service"
)

// SeedHandler loads demo data on request.
type SeedHandler struct {
	seed *service.SeedService
}

// NewSeedHandler constructs handler.
func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seedService}
}

// Seed handles POST /api/seed and GET /api/seed/run.
func (h *SeedHandler) Seed(c *fiber.Ctx) error {
	result, err := h.seed.Seed(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": result})
}
