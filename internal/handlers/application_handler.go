package handlers

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"conductum/ats-api/internal/models"
	"conductum/ats-api/internal/repositories"
)

type ApplicationHandler struct {
	applicantRepo repositories.ApplicantRepository
	log           *zap.Logger
}

func NewApplicationHandler(applicantRepo repositories.ApplicantRepository, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		applicantRepo: applicantRepo,
		log:           log,
	}
}

var emailMask = regexp.MustCompile(`^(.{2})(.*)(@.*)$`)

// HandleListApplications handles GET /recruiter/applications/:jobID. Contact
// details stay masked until the application moves past "submitted".
func (h *ApplicationHandler) HandleListApplications(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	applicants, err := h.applicantRepo.FindByJobID(jobID)
	if err != nil {
		h.log.Error("failed to fetch applications",
			zap.String("job_id", jobID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch applications",
		})
	}

	masked := make([]models.Applicant, 0, len(applicants))
	for _, applicant := range applicants {
		masked = append(masked, maskPII(applicant))
	}

	return c.Status(fiber.StatusOK).JSON(masked)
}

// HandleGetApplication handles GET /recruiter/applications/:jobID/:id. The
// detail view is unmasked: opening a single application is the review act
// that the listing's masking defers to.
func (h *ApplicationHandler) HandleGetApplication(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("jobID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	applicant, err := h.applicantRepo.FindByID(id)
	if err != nil || applicant.JobID != jobID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(applicant)
}

// HandleUpdateStatus handles PATCH /recruiter/applications/:id/status
func (h *ApplicationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status is required",
		})
	}

	if err := h.applicantRepo.UpdateStatus(id, models.ApplicationStatus(req.Status), req.Reason); err != nil {
		h.log.Error("failed to update application status",
			zap.String("application_id", id.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to update status",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Status updated successfully",
	})
}

// HandleBatchUpdateStatus handles PATCH /recruiter/applications/status. The
// first failing update aborts the batch.
func (h *ApplicationHandler) HandleBatchUpdateStatus(c *fiber.Ctx) error {
	var req models.BatchUpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Status == "" || len(req.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status and an array of ids are required",
		})
	}

	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Each ID must be a valid UUID",
			})
		}

		if err := h.applicantRepo.UpdateStatus(id, models.ApplicationStatus(req.Status), req.Reason); err != nil {
			h.log.Error("failed to update status in batch",
				zap.String("application_id", id.String()),
				zap.Error(err),
			)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to update statuses",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Statuses updated successfully",
	})
}

func maskPII(applicant models.Applicant) models.Applicant {
	if applicant.CurrentStatus != models.StatusSubmitted {
		return applicant
	}

	if applicant.Email != "" {
		applicant.Email = emailMask.ReplaceAllString(applicant.Email, "$1***$3")
	}
	if applicant.Telephone != "" {
		applicant.Telephone = "***-***-****"
	}

	return applicant
}
