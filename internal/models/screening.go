package models

import (
	"time"

	"github.com/google/uuid"

	"screenerpro/engine/internal/screening"
)

type ScreeningStatus string

const (
	StatusQueued     ScreeningStatus = "queued"
	StatusProcessing ScreeningStatus = "processing"
	StatusCompleted  ScreeningStatus = "completed"
	StatusFailed     ScreeningStatus = "failed"
)

// Screening is one batch job: a set of resume documents scored against one
// job description.
type Screening struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobTitle       string          `gorm:"type:text" json:"job_title"`
	JobDescription string          `gorm:"type:text;not null" json:"job_description"`
	HighPriority   []string        `gorm:"serializer:json;type:jsonb" json:"high_priority"`
	MediumPriority []string        `gorm:"serializer:json;type:jsonb" json:"medium_priority"`
	DocumentIDs    []string        `gorm:"serializer:json;type:jsonb" json:"document_ids"`
	MinScore       float64         `json:"min_score"`
	MinExperience  float64         `json:"min_experience"`
	MaxExperience  float64         `json:"max_experience"`
	MinCGPA        float64         `json:"min_cgpa"`
	Status         ScreeningStatus `gorm:"not null;default:'queued'" json:"status"`
	ErrorMessage   *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Screening) TableName() string {
	return "screenings"
}

// ScreeningResult is one persisted output row, self-contained per resume.
type ScreeningResult struct {
	ID              uuid.UUID              `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ScreeningID     uuid.UUID              `gorm:"type:uuid;not null;index" json:"screening_id"`
	FileName        string                 `gorm:"type:text" json:"file_name"`
	CandidateName   string                 `gorm:"type:text" json:"candidate_name"`
	Score           float64                `json:"score"`
	YearsExperience float64                `json:"years_experience"`
	CGPA            *float64               `json:"cgpa,omitempty"`
	Email           string                 `gorm:"type:text" json:"email"`
	Phone           string                 `gorm:"type:text" json:"phone"`
	Location        string                 `gorm:"type:text" json:"location"`
	Languages       []string               `gorm:"serializer:json;type:jsonb" json:"languages"`
	Education       string                 `gorm:"type:text" json:"education"`
	WorkHistory     []screening.WorkEntry  `gorm:"serializer:json;type:jsonb" json:"work_history"`
	Projects        []screening.Project    `gorm:"serializer:json;type:jsonb" json:"projects"`
	MatchedSkills   []string               `gorm:"serializer:json;type:jsonb" json:"matched_skills"`
	MissingSkills   []string               `gorm:"serializer:json;type:jsonb" json:"missing_skills"`
	Similarity      float64                `json:"similarity"`
	RawText         string                 `gorm:"type:text" json:"-"`
	Tier            string                 `gorm:"type:text" json:"tier"`
	CertificateRank string                 `gorm:"type:text" json:"certificate_rank"`
	Assessment      string                 `gorm:"type:text" json:"assessment"`
	Failed          bool                   `json:"failed"`
	CreatedAt       time.Time              `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Screening Screening `gorm:"foreignKey:ScreeningID" json:"-"`
}

func (ScreeningResult) TableName() string {
	return "screening_results"
}

// ResultFromRow converts a pipeline row into its persisted form.
func ResultFromRow(screeningID uuid.UUID, row screening.ResultRow) ScreeningResult {
	return ScreeningResult{
		ID:              uuid.New(),
		ScreeningID:     screeningID,
		FileName:        row.FileName,
		CandidateName:   row.CandidateName,
		Score:           row.Score,
		YearsExperience: row.YearsExperience,
		CGPA:            row.CGPA,
		Email:           row.Email,
		Phone:           row.Phone,
		Location:        row.Location,
		Languages:       row.Languages,
		Education:       row.Education,
		WorkHistory:     row.WorkHistory,
		Projects:        row.Projects,
		MatchedSkills:   row.MatchedSkills,
		MissingSkills:   row.MissingSkills,
		Similarity:      row.Similarity,
		RawText:         row.RawText,
		Tier:            row.Tier,
		CertificateRank: row.CertificateRank,
		Assessment:      row.Assessment,
		Failed:          row.Failed,
	}
}
