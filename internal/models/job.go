package models

import (
	"time"

	"github.com/google/uuid"
)

type Job struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string    `gorm:"type:text;not null" json:"title"`
	Location        string    `gorm:"type:text" json:"location"`
	CompanyName     string    `gorm:"type:text" json:"company_name"`
	JobType         string    `gorm:"type:text" json:"job_type"`
	JobRequirements string    `gorm:"type:text" json:"job_requirements"`
	JobDescription  string    `gorm:"type:text" json:"job_description"`
	Deadline        time.Time `gorm:"type:timestamp" json:"deadline"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
