package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
	MediaType    string `json:"media_type"`
}

type ScreenRequest struct {
	JobTitle        string   `json:"job_title"`
	JobDescription  string   `json:"job_description" validate:"required_without=JDDocumentID"`
	JDDocumentID    string   `json:"jd_document_id" validate:"omitempty,uuid"`
	DocumentIDs     []string `json:"document_ids" validate:"required,min=1,dive,uuid"`
	HighPriority    []string `json:"high_priority"`
	MediumPriority  []string `json:"medium_priority"`
	MinScore        float64  `json:"min_score" validate:"gte=0,lte=100"`
	MinExperience   float64  `json:"min_experience" validate:"gte=0"`
	MaxExperience   float64  `json:"max_experience" validate:"gte=0"`
	MinCGPA         float64  `json:"min_cgpa" validate:"gte=0,lte=4"`
}

type ScreenResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ScreeningResultResponse struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	JobTitle     string            `json:"job_title"`
	Results      []ScreeningResult `json:"results,omitempty"`
	ErrorMessage *string           `json:"error_message,omitempty"`
}

type SimilarCandidate struct {
	FileName      string  `json:"file_name"`
	CandidateName string  `json:"candidate_name"`
	ScreeningID   string  `json:"screening_id"`
	Score         float32 `json:"score"`
	Tier          string  `json:"tier"`
}
