package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"conductum/ats-api/internal/models"
)

type ApplicantRepository interface {
	Create(applicant *models.Applicant) error
	FindByID(id uuid.UUID) (*models.Applicant, error)
	FindByJobID(jobID uuid.UUID) ([]models.Applicant, error)
	FindByJobIDAndIDs(jobID uuid.UUID, ids []uuid.UUID) ([]models.Applicant, error)
	FindByJobIDAndStatus(jobID uuid.UUID, status models.ApplicationStatus) ([]models.Applicant, error)
	UpdateStatus(id uuid.UUID, status models.ApplicationStatus, reason string) error
	UpdateATS(id uuid.UUID, ats string) error
}

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

// Create implements ApplicantRepository.
func (r *applicantRepository) Create(applicant *models.Applicant) error {
	if err := r.db.Create(applicant).Error; err != nil {
		return fmt.Errorf("failed to create applicant: %w", err)
	}

	return nil
}

// FindByID implements ApplicantRepository.
func (r *applicantRepository) FindByID(id uuid.UUID) (*models.Applicant, error) {
	var applicant models.Applicant
	if err := r.db.Where("id = ?", id).First(&applicant).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("applicant not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find applicant: %w", err)
	}

	return &applicant, nil
}

// FindByJobID implements ApplicantRepository.
func (r *applicantRepository) FindByJobID(jobID uuid.UUID) ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := r.db.Where("job_id = ?", jobID).Order("created_at ASC").Find(&applicants).Error; err != nil {
		return nil, fmt.Errorf("failed to find applicants: %w", err)
	}

	return applicants, nil
}

// FindByJobIDAndIDs implements ApplicantRepository.
func (r *applicantRepository) FindByJobIDAndIDs(jobID uuid.UUID, ids []uuid.UUID) ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := r.db.Where("job_id = ? AND id IN ?", jobID, ids).Find(&applicants).Error; err != nil {
		return nil, fmt.Errorf("failed to find applicants: %w", err)
	}

	return applicants, nil
}

// FindByJobIDAndStatus implements ApplicantRepository.
func (r *applicantRepository) FindByJobIDAndStatus(jobID uuid.UUID, status models.ApplicationStatus) ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := r.db.Where("job_id = ? AND current_status = ?", jobID, status).Find(&applicants).Error; err != nil {
		return nil, fmt.Errorf("failed to find applicants: %w", err)
	}

	return applicants, nil
}

// UpdateStatus implements ApplicantRepository.
func (r *applicantRepository) UpdateStatus(id uuid.UUID, status models.ApplicationStatus, reason string) error {
	result := r.db.Model(&models.Applicant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_status": status,
			"status_reason":  reason,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("applicant not found")
	}

	return nil
}

// UpdateATS implements ApplicantRepository.
func (r *applicantRepository) UpdateATS(id uuid.UUID, ats string) error {
	result := r.db.Model(&models.Applicant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ats":        ats,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update ats: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("applicant not found")
	}

	return nil
}
