package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	StatusSubmitted ApplicationStatus = "submitted"
	StatusReviewed  ApplicationStatus = "reviewed"
	StatusInterview ApplicationStatus = "interview"
	StatusRejected  ApplicationStatus = "rejected"
	StatusHired     ApplicationStatus = "hired"
)

// Applicant is one submitted application. The structured sections are stored
// exactly as the candidate submitted them; this service never validates them.
type Applicant struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"job_id"`
	Name           string            `gorm:"type:text" json:"name"`
	Email          string            `gorm:"type:text" json:"email"`
	Telephone      string            `gorm:"type:text" json:"telephone"`
	Linkedin       string            `gorm:"type:text" json:"linkedin"`
	Github         string            `gorm:"type:text" json:"github"`
	Facebook       string            `gorm:"type:text" json:"facebook"`
	Twitter        string            `gorm:"type:text" json:"twitter"`
	Dribbble       string            `gorm:"type:text" json:"dribbble"`
	Behance        string            `gorm:"type:text" json:"behance"`
	WorkExperience json.RawMessage   `gorm:"type:jsonb" json:"work_experience,omitempty"`
	Education      json.RawMessage   `gorm:"type:jsonb" json:"education,omitempty"`
	Skills         json.RawMessage   `gorm:"type:jsonb" json:"skills,omitempty"`
	Projects       json.RawMessage   `gorm:"type:jsonb" json:"projects,omitempty"`
	Certifications json.RawMessage   `gorm:"type:jsonb" json:"certifications,omitempty"`
	ATS            string            `gorm:"type:text" json:"ats"`
	CurrentStatus  ApplicationStatus `gorm:"type:text;not null;default:'submitted'" json:"current_status"`
	StatusReason   string            `gorm:"type:text" json:"status_reason,omitempty"`
	CreatedAt      time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Job Job `gorm:"foreignKey:JobID" json:"-"`
}

func (Applicant) TableName() string {
	return "applicants"
}
