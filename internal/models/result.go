package models

import "encoding/json"

type CreateJobRequest struct {
	Title        string `json:"title" validate:"required"`
	Requirements string `json:"requirements" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Deadline     string `json:"deadline" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Company      string `json:"company" validate:"required"`
	Type         string `json:"type" validate:"required"`
}

type ApplyRequest struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Telephone      string          `json:"telephone"`
	Linkedin       string          `json:"linkedin"`
	Github         string          `json:"github"`
	Facebook       string          `json:"facebook"`
	Twitter        string          `json:"twitter"`
	Dribbble       string          `json:"dribbble"`
	Behance        string          `json:"behance"`
	WorkExperience json.RawMessage `json:"work_experience,omitempty"`
	Education      json.RawMessage `json:"education,omitempty"`
	Skills         json.RawMessage `json:"skills,omitempty"`
	Projects       json.RawMessage `json:"projects,omitempty"`
	Certifications json.RawMessage `json:"certifications,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason,omitempty"`
}

type BatchUpdateStatusRequest struct {
	IDs    []string `json:"ids" validate:"required,min=1"`
	Status string   `json:"status" validate:"required"`
	Reason string   `json:"reason,omitempty"`
}

type RescoreRequest struct {
	IDs []string `json:"ids,omitempty"`
}

type RescoreResponse struct {
	JobID   string `json:"job_id"`
	Scored  int    `json:"scored"`
	Message string `json:"message"`
}

type ScreenRequest struct {
	Prompt string   `json:"prompt" validate:"required"`
	IDs    []string `json:"ids,omitempty"`
}

type ScreenResponse struct {
	Message string `json:"message"`
}
