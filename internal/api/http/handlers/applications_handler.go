package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/talentdesk/ats-service/internal/api/dto"
	"github.com/talentdesk/ats-service/internal/domain"
	"github.com/talentdesk/ats-service/internal/service"
	apperrors "github.com/talentdesk/ats-service/pkg/util/errorutil"
)

// ApplicationsHandler manages candidate submissions and recruiter triage.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	dashboard    *service.DashboardService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applications *service.ApplicationService, dashboard *service.DashboardService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications, dashboard: dashboard}
}

// Apply POST /api/jobs/:id/apply (multipart).
func (h *ApplicationsHandler) Apply(c *fiber.Ctx) error {
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ApplyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	input := service.SubmitInput{CandidateName: req.CandidateName, CandidateEmail: req.CandidateEmail}
	if header, err := c.FormFile("resume"); err == nil && header.Size > 0 {
		f, err := header.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable resume", map[string]any{"resume": err.Error()})
		}
		defer f.Close()
		input.Resume = &service.ResumeUpload{FileName: header.Filename, Size: header.Size, Content: f}
	}

	app, err := h.applications.SubmitApplication(c.UserContext(), jobID, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": app})
}

// List GET /api/applications?jobId=&status=.
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	filter, err := parseApplicationFilter(c)
	if err != nil {
		return err
	}
	items, err := h.applications.ListApplications(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// Search GET /api/applications/search?query=.
func (h *ApplicationsHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return apperrors.NewValidationError("query is required", map[string]any{"query": "is required"})
	}
	items, err := h.applications.SearchApplications(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// Stats GET /api/applications/stats.
func (h *ApplicationsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.GetDashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Get GET /api/applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	app, err := h.applications.GetApplication(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": app})
}

// UpdateStatus PUT /api/applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.StatusUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	status, ok := domain.ParseApplicationStatus(req.Status)
	if !ok {
		return invalidStatus(req.Status)
	}
	app, err := h.applications.UpdateStatus(c.UserContext(), id, status, user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": app})
}

func parseApplicationFilter(c *fiber.Ctx) (service.ApplicationFilter, error) {
	var filter service.ApplicationFilter
	if raw := strings.TrimSpace(c.Query("jobId")); raw != "" {
		jobID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid jobId", map[string]any{"jobId": raw})
		}
		filter.JobID = &jobID
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := domain.ParseApplicationStatus(raw)
		if !ok {
			return filter, invalidStatus(raw)
		}
		filter.Status = &status
	}
	return filter, nil
}

func invalidStatus(raw string) error {
	allowed := make([]string, 0, len(domain.ApplicationStatuses()))
	for _, s := range domain.ApplicationStatuses() {
		allowed = append(allowed, string(s))
	}
	return apperrors.NewValidationError("invalid status", map[string]any{
		"status":  raw,
		"allowed": allowed,
	})
}
