package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/talentdesk/ats-service/internal/api/dto"
	"github.com/talentdesk/ats-service/internal/auth"
	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/service"
	apperrors "github.com/talentdesk/ats-service/pkg/util/errorutil"
)

// JobsHandler manages job posting endpoints.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobService}
}

// ListActive GET /api/jobs.
func (h *JobsHandler) ListActive(c *fiber.Ctx) error {
	items, err := h.jobs.ListActiveJobs(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListAll GET /api/jobs/all.
func (h *JobsHandler) ListAll(c *fiber.Ctx) error {
	items, err := h.jobs.ListAllJobs(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListMine GET /api/jobs/my.
func (h *JobsHandler) ListMine(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.jobs.ListJobsByOwner(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	job, err := h.jobs.GetJob(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": job})
}

// Create POST /api/jobs.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	job, err := h.jobs.CreateJob(c.UserContext(), jobInput(req), user)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": job})
}

// Update PUT /api/jobs/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	job, err := h.jobs.UpdateJob(c.UserContext(), id, jobInput(req), user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": job})
}

// Delete DELETE /api/jobs/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.jobs.DeleteJob(c.UserContext(), id, user); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func jobInput(req dto.JobRequest) service.JobInput {
	return service.JobInput{Title: req.Title, Description: req.Description, Active: req.Active}
}

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("recruiter required")
	}
	return principal.User, nil
}
