package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"conductum/ats-api/internal/models"
)

// TextGenerator is the completion capability the scorer consumes.
type TextGenerator interface {
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

type ScoringService interface {
	ScoreApplication(ctx context.Context, resume interface{}, job *models.Job) (string, error)
	// RescoreBatch fans out one scoring call per applicant with bounded
	// concurrency and awaits all. All-or-nothing: a single failure fails
	// the batch and no scores are returned.
	RescoreBatch(ctx context.Context, job *models.Job, applicants []models.Applicant) (map[uuid.UUID]string, error)
	// ScreenApplicants runs the recruiter's free-form instruction against
	// a job's applicant pool through the fixed screening rubric and
	// returns the model's analysis verbatim.
	ScreenApplicants(ctx context.Context, instruction string, job *models.Job, applicants []models.Applicant) (string, error)
}

type scoringService struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	maxRetries    int
	concurrency   int
	log           *zap.Logger
}

func NewScoringService(generator TextGenerator, maxRetries, concurrency int, log *zap.Logger) ScoringService {
	if concurrency < 1 {
		concurrency = 1
	}

	return &scoringService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		concurrency:   concurrency,
		log:           log,
	}
}

// ScoreApplication implements ScoringService.
func (s *scoringService) ScoreApplication(ctx context.Context, resume interface{}, job *models.Job) (string, error) {
	resumeJSON, err := json.Marshal(map[string]interface{}{"resume": resume})
	if err != nil {
		return "", fmt.Errorf("marshal resume payload: %w", err)
	}

	prompt := s.promptBuilder.BuildScoringPrompt(string(resumeJSON), job.JobRequirements, job.JobDescription)

	score, err := s.generator.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return score, nil
}

// RescoreBatch implements ScoringService.
func (s *scoringService) RescoreBatch(ctx context.Context, job *models.Job, applicants []models.Applicant) (map[uuid.UUID]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	var mu sync.Mutex
	scores := make(map[uuid.UUID]string, len(applicants))

	for _, applicant := range applicants {
		g.Go(func() error {
			score, err := s.ScoreApplication(gctx, applicantResume(&applicant), job)
			if err != nil {
				return fmt.Errorf("score applicant %s: %w", applicant.ID, err)
			}

			mu.Lock()
			scores[applicant.ID] = score
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Warn("batch rescore aborted",
			zap.String("job_id", job.ID.String()),
			zap.Int("applicants", len(applicants)),
			zap.Error(err),
		)
		return nil, err
	}

	return scores, nil
}

// ScreenApplicants implements ScoringService.
func (s *scoringService) ScreenApplicants(ctx context.Context, instruction string, job *models.Job, applicants []models.Applicant) (string, error) {
	pool := make([]map[string]interface{}, 0, len(applicants))
	for _, applicant := range applicants {
		entry := applicantResume(&applicant)
		entry["id"] = applicant.ID.String()
		entry["status"] = applicant.CurrentStatus
		entry["ats"] = applicant.ATS
		pool = append(pool, entry)
	}

	applicantsJSON, err := json.Marshal(pool)
	if err != nil {
		return "", fmt.Errorf("marshal applicant pool: %w", err)
	}

	prompt := s.promptBuilder.BuildScreeningPrompt(instruction, job.JobRequirements, string(applicantsJSON))

	analysis, err := s.generator.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return analysis, nil
}

// applicantResume builds the scoring payload from a stored applicant row,
// echoing the structured sections exactly as submitted.
func applicantResume(a *models.Applicant) map[string]interface{} {
	return map[string]interface{}{
		"name":            a.Name,
		"email":           a.Email,
		"telephone":       a.Telephone,
		"linkedin":        a.Linkedin,
		"github":          a.Github,
		"facebook":        a.Facebook,
		"twitter":         a.Twitter,
		"dribbble":        a.Dribbble,
		"behance":         a.Behance,
		"work_experience": a.WorkExperience,
		"education":       a.Education,
		"skills":          a.Skills,
		"projects":        a.Projects,
		"certifications":  a.Certifications,
	}
}
