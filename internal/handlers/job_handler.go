package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"conductum/ats-api/internal/models"
	"conductum/ats-api/internal/repositories"
	"conductum/ats-api/internal/services"
)

type JobHandler struct {
	jobRepo       repositories.JobRepository
	applicantRepo repositories.ApplicantRepository
	scorer        services.ScoringService
	log           *zap.Logger
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	applicantRepo repositories.ApplicantRepository,
	scorer services.ScoringService,
	log *zap.Logger,
) *JobHandler {
	return &JobHandler{
		jobRepo:       jobRepo,
		applicantRepo: applicantRepo,
		scorer:        scorer,
		log:           log,
	}
}

// HandleCreateJob handles POST /jobs
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	required := map[string]string{
		"title":        req.Title,
		"requirements": req.Requirements,
		"description":  req.Description,
		"location":     req.Location,
		"company":      req.Company,
		"type":         req.Type,
	}
	for field, value := range required {
		if value == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": field + " must be a non-empty string",
			})
		}
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "deadline must be a valid ISO 8601 date",
		})
	}

	job := &models.Job{
		ID:              uuid.New(),
		Title:           req.Title,
		Location:        req.Location,
		CompanyName:     req.Company,
		JobType:         req.Type,
		JobRequirements: req.Requirements,
		JobDescription:  req.Description,
		Deadline:        deadline,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		h.log.Error("failed to create job", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	h.log.Info("job created",
		zap.String("job_id", job.ID.String()),
		zap.String("title", job.Title),
	)

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleListJobs handles GET /jobs
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindAll()
	if err != nil {
		h.log.Error("failed to fetch jobs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch jobs",
		})
	}

	return c.Status(fiber.StatusOK).JSON(jobs)
}

// HandleApply handles POST /jobs/:id/apply. The submitted profile fields are
// persisted as-is; only the suitability score is computed here.
func (h *JobHandler) HandleApply(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	var req models.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	ats, err := h.scorer.ScoreApplication(c.Context(), req, job)
	if err != nil {
		h.log.Error("failed to score application",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit application",
		})
	}

	applicant := &models.Applicant{
		ID:             uuid.New(),
		JobID:          job.ID,
		Name:           req.Name,
		Email:          req.Email,
		Telephone:      req.Telephone,
		Linkedin:       req.Linkedin,
		Github:         req.Github,
		Facebook:       req.Facebook,
		Twitter:        req.Twitter,
		Dribbble:       req.Dribbble,
		Behance:        req.Behance,
		WorkExperience: req.WorkExperience,
		Education:      req.Education,
		Skills:         req.Skills,
		Projects:       req.Projects,
		Certifications: req.Certifications,
		ATS:            ats,
		CurrentStatus:  models.StatusSubmitted,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.applicantRepo.Create(applicant); err != nil {
		h.log.Error("failed to persist applicant",
			zap.String("job_id", job.ID.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit application",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(applicant)
}

// HandleRescore handles POST /jobs/:id/rescore. All-or-nothing: scores are
// persisted only if every generative call in the batch succeeded.
func (h *JobHandler) HandleRescore(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	var req models.RescoreRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	var applicants []models.Applicant
	if len(req.IDs) > 0 {
		ids := make([]uuid.UUID, 0, len(req.IDs))
		for _, raw := range req.IDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Each ID must be a valid UUID",
				})
			}
			ids = append(ids, id)
		}
		applicants, err = h.applicantRepo.FindByJobIDAndIDs(jobID, ids)
	} else {
		applicants, err = h.applicantRepo.FindByJobID(jobID)
	}
	if err != nil {
		h.log.Error("failed to fetch applicants", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to rescore applicants",
		})
	}

	if len(applicants) == 0 {
		return c.Status(fiber.StatusOK).JSON(models.RescoreResponse{
			JobID:   job.ID.String(),
			Scored:  0,
			Message: "No applicants to rescore",
		})
	}

	scores, err := h.scorer.RescoreBatch(c.Context(), job, applicants)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to rescore applicants",
		})
	}

	for id, ats := range scores {
		if err := h.applicantRepo.UpdateATS(id, ats); err != nil {
			h.log.Error("failed to persist rescored ats",
				zap.String("applicant_id", id.String()),
				zap.Error(err),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to rescore applicants",
			})
		}
	}

	h.log.Info("batch rescore completed",
		zap.String("job_id", job.ID.String()),
		zap.Int("scored", len(scores)),
	)

	return c.Status(fiber.StatusOK).JSON(models.RescoreResponse{
		JobID:   job.ID.String(),
		Scored:  len(scores),
		Message: "Applicants rescored successfully",
	})
}

// HandleScreenApplicants handles POST /recruiter/jobs/:id/chatbot. Without an
// explicit id list the pool defaults to applicants already at the interview
// stage.
func (h *JobHandler) HandleScreenApplicants(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	var req models.ScreenRequest
	if err := c.BodyParser(&req); err != nil || req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Prompt is required",
		})
	}

	var applicants []models.Applicant
	if len(req.IDs) > 0 {
		ids := make([]uuid.UUID, 0, len(req.IDs))
		for _, raw := range req.IDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Each ID must be a valid UUID",
				})
			}
			ids = append(ids, id)
		}
		applicants, err = h.applicantRepo.FindByJobIDAndIDs(jobID, ids)
	} else {
		applicants, err = h.applicantRepo.FindByJobIDAndStatus(jobID, models.StatusInterview)
	}
	if err != nil {
		h.log.Error("failed to fetch applicants for screening", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "There was an error, please try again later",
		})
	}

	analysis, err := h.scorer.ScreenApplicants(c.Context(), req.Prompt, job, applicants)
	if err != nil {
		h.log.Error("applicant screening failed",
			zap.String("job_id", job.ID.String()),
			zap.Int("applicants", len(applicants)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "There was an error, please try again later",
		})
	}

	h.log.Info("applicant screening completed",
		zap.String("job_id", job.ID.String()),
		zap.Int("applicants", len(applicants)),
	)

	return c.Status(fiber.StatusOK).JSON(models.ScreenResponse{
		Message: analysis,
	})
}
