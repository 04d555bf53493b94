package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"conductum/ats-api/internal/models"
)

type stubJobRepo struct {
	job *models.Job
}

func (s *stubJobRepo) Create(job *models.Job) error { return nil }

func (s *stubJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	if s.job != nil && s.job.ID == id {
		return s.job, nil
	}
	return nil, errors.New("job not found")
}

func (s *stubJobRepo) FindAll() ([]models.Job, error) {
	if s.job == nil {
		return nil, nil
	}
	return []models.Job{*s.job}, nil
}

type stubApplicantRepo struct {
	applicants   []models.Applicant
	atsUpdates   int
	statusFilter models.ApplicationStatus
	findErr      error
}

func (s *stubApplicantRepo) Create(applicant *models.Applicant) error {
	s.applicants = append(s.applicants, *applicant)
	return nil
}

func (s *stubApplicantRepo) FindByID(id uuid.UUID) (*models.Applicant, error) {
	for i := range s.applicants {
		if s.applicants[i].ID == id {
			return &s.applicants[i], nil
		}
	}
	return nil, errors.New("applicant not found")
}

func (s *stubApplicantRepo) FindByJobID(jobID uuid.UUID) ([]models.Applicant, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.applicants, nil
}

func (s *stubApplicantRepo) FindByJobIDAndIDs(jobID uuid.UUID, ids []uuid.UUID) ([]models.Applicant, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var matched []models.Applicant
	for _, applicant := range s.applicants {
		for _, id := range ids {
			if applicant.ID == id {
				matched = append(matched, applicant)
			}
		}
	}
	return matched, nil
}

func (s *stubApplicantRepo) FindByJobIDAndStatus(jobID uuid.UUID, status models.ApplicationStatus) ([]models.Applicant, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.statusFilter = status
	var matched []models.Applicant
	for _, applicant := range s.applicants {
		if applicant.CurrentStatus == status {
			matched = append(matched, applicant)
		}
	}
	return matched, nil
}

func (s *stubApplicantRepo) UpdateStatus(id uuid.UUID, status models.ApplicationStatus, reason string) error {
	return nil
}

func (s *stubApplicantRepo) UpdateATS(id uuid.UUID, ats string) error {
	s.atsUpdates++
	return nil
}

type stubScorer struct {
	batchErr        error
	screenErr       error
	analysis        string
	lastInstruction string
	screened        []models.Applicant
}

func (s *stubScorer) ScoreApplication(_ context.Context, resume interface{}, job *models.Job) (string, error) {
	return "Total Score: 70/100", nil
}

func (s *stubScorer) RescoreBatch(_ context.Context, job *models.Job, applicants []models.Applicant) (map[uuid.UUID]string, error) {
	if s.batchErr != nil {
		return nil, s.batchErr
	}
	scores := make(map[uuid.UUID]string, len(applicants))
	for _, applicant := range applicants {
		scores[applicant.ID] = "Total Score: 70/100"
	}
	return scores, nil
}

func (s *stubScorer) ScreenApplicants(_ context.Context, instruction string, job *models.Job, applicants []models.Applicant) (string, error) {
	s.lastInstruction = instruction
	s.screened = applicants
	if s.screenErr != nil {
		return "", s.screenErr
	}
	return s.analysis, nil
}

func newJobApp(jobRepo *stubJobRepo, applicantRepo *stubApplicantRepo, scorer *stubScorer) *fiber.App {
	app := fiber.New()
	handler := NewJobHandler(jobRepo, applicantRepo, scorer, zap.NewNop())
	app.Post("/api/v1/jobs/:id/rescore", handler.HandleRescore)
	app.Post("/api/v1/recruiter/jobs/:id/chatbot", handler.HandleScreenApplicants)
	return app
}

func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()

	req, err := http.NewRequest(method, target, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func storedJob() *models.Job {
	return &models.Job{
		ID:              uuid.New(),
		Title:           "Backend Engineer",
		JobRequirements: "Go, Postgres, 5 years experience",
		JobDescription:  "Build and run backend services",
	}
}

func storedApplicant(jobID uuid.UUID, name string, status models.ApplicationStatus) models.Applicant {
	return models.Applicant{
		ID:            uuid.New(),
		JobID:         jobID,
		Name:          name,
		Email:         "candidate@example.com",
		CurrentStatus: status,
	}
}

func TestHandleRescoreFailurePersistsNothing(t *testing.T) {
	job := storedJob()
	applicantRepo := &stubApplicantRepo{applicants: []models.Applicant{
		storedApplicant(job.ID, "Ada", models.StatusSubmitted),
		storedApplicant(job.ID, "Ben", models.StatusSubmitted),
	}}
	scorer := &stubScorer{batchErr: errors.New("model unavailable")}

	app := newJobApp(&stubJobRepo{job: job}, applicantRepo, scorer)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID.String()+"/rescore", "{}"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to rescore applicants", decodeError(t, resp))
	assert.Zero(t, applicantRepo.atsUpdates, "no score may be written when the batch fails")
}

func TestHandleRescoreSuccessPersistsEveryScore(t *testing.T) {
	job := storedJob()
	applicantRepo := &stubApplicantRepo{applicants: []models.Applicant{
		storedApplicant(job.ID, "Ada", models.StatusSubmitted),
		storedApplicant(job.ID, "Ben", models.StatusSubmitted),
		storedApplicant(job.ID, "Cleo", models.StatusSubmitted),
	}}

	app := newJobApp(&stubJobRepo{job: job}, applicantRepo, &stubScorer{})

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/v1/jobs/"+job.ID.String()+"/rescore", "{}"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, applicantRepo.atsUpdates)
}

func TestHandleScreenApplicantsDefaultsToInterviewPool(t *testing.T) {
	job := storedJob()
	interviewee := storedApplicant(job.ID, "Ada", models.StatusInterview)
	applicantRepo := &stubApplicantRepo{applicants: []models.Applicant{
		interviewee,
		storedApplicant(job.ID, "Ben", models.StatusSubmitted),
	}}
	scorer := &stubScorer{analysis: `{"summary":"one strong candidate","applicants":[]}`}

	app := newJobApp(&stubJobRepo{job: job}, applicantRepo, scorer)

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		"/api/v1/recruiter/jobs/"+job.ID.String()+"/chatbot",
		`{"prompt":"who should move to final round?"}`,
	))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusInterview, applicantRepo.statusFilter)
	require.Len(t, scorer.screened, 1)
	assert.Equal(t, interviewee.ID, scorer.screened[0].ID)
	assert.Equal(t, "who should move to final round?", scorer.lastInstruction)
}

func TestHandleScreenApplicantsExplicitIDsSkipStatusFilter(t *testing.T) {
	job := storedJob()
	submitted := storedApplicant(job.ID, "Ben", models.StatusSubmitted)
	applicantRepo := &stubApplicantRepo{applicants: []models.Applicant{
		storedApplicant(job.ID, "Ada", models.StatusInterview),
		submitted,
	}}
	scorer := &stubScorer{analysis: `{"summary":"ok","applicants":[]}`}

	app := newJobApp(&stubJobRepo{job: job}, applicantRepo, scorer)

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		"/api/v1/recruiter/jobs/"+job.ID.String()+"/chatbot",
		`{"prompt":"check this one","ids":["`+submitted.ID.String()+`"]}`,
	))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, scorer.screened, 1)
	assert.Equal(t, submitted.ID, scorer.screened[0].ID)
}

func TestHandleScreenApplicantsRequiresPrompt(t *testing.T) {
	job := storedJob()
	app := newJobApp(&stubJobRepo{job: job}, &stubApplicantRepo{}, &stubScorer{})

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		"/api/v1/recruiter/jobs/"+job.ID.String()+"/chatbot", `{}`,
	))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Prompt is required", decodeError(t, resp))
}

func TestHandleScreenApplicantsUnknownJob(t *testing.T) {
	app := newJobApp(&stubJobRepo{}, &stubApplicantRepo{}, &stubScorer{})

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		"/api/v1/recruiter/jobs/"+uuid.NewString()+"/chatbot",
		`{"prompt":"anything"}`,
	))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Job not found", decodeError(t, resp))
}

func TestHandleScreenApplicantsGenerationFailure(t *testing.T) {
	job := storedJob()
	applicantRepo := &stubApplicantRepo{applicants: []models.Applicant{
		storedApplicant(job.ID, "Ada", models.StatusInterview),
	}}
	scorer := &stubScorer{screenErr: errors.New("model unavailable")}

	app := newJobApp(&stubJobRepo{job: job}, applicantRepo, scorer)

	resp, err := app.Test(jsonRequest(t, http.MethodPost,
		"/api/v1/recruiter/jobs/"+job.ID.String()+"/chatbot",
		`{"prompt":"screen them"}`,
	))
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "There was an error, please try again later", decodeError(t, resp))
}
