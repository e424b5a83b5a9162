package screening

// NotFound is the sentinel used for string fields no heuristic could fill.
const NotFound = "Not Found"

// WorkEntry is one employment record pulled out of the work history section.
type WorkEntry struct {
	Company string `json:"company"`
	Title   string `json:"title"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// Project is one project record with the technologies mentioned in it.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// CandidateProfile is the structured result of field extraction for one resume.
// Every field is best-effort: extractors degrade to NotFound, zero or nil
// instead of failing the candidate.
type CandidateProfile struct {
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Location        string      `json:"location"`
	YearsExperience float64     `json:"years_experience"`
	CGPA            *float64    `json:"cgpa"` // normalized to a 4.0 scale; nil when absent
	Languages       []string    `json:"languages"`
	Education       string      `json:"education"`
	WorkHistory     []WorkEntry `json:"work_history"`
	Projects        []Project   `json:"projects"`
}

// JobRequirement is the scoring anchor: the job description text plus
// operator-flagged skill priorities.
type JobRequirement struct {
	Text           string   `json:"text"`
	HighPriority   []string `json:"high_priority"`
	MediumPriority []string `json:"medium_priority"`
}

// ScoreResult is the outcome of scoring one candidate against one job.
type ScoreResult struct {
	Score           float64  `json:"score"`      // [0,100]
	Similarity      float64  `json:"similarity"` // [0,1]
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	Tier            string   `json:"tier"`
	CertificateRank string   `json:"certificate_rank"`
}

// ResultRow is one row of the screening output table, self-contained and
// independent of every other row. Error rows carry the failure reason in
// Assessment and default values everywhere else.
type ResultRow struct {
	FileName        string      `json:"file_name"`
	CandidateName   string      `json:"candidate_name"`
	Score           float64     `json:"score"`
	YearsExperience float64     `json:"years_experience"`
	CGPA            *float64    `json:"cgpa"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Location        string      `json:"location"`
	Languages       []string    `json:"languages"`
	Education       string      `json:"education"`
	WorkHistory     []WorkEntry `json:"work_history"`
	Projects        []Project   `json:"projects"`
	MatchedSkills   []string    `json:"matched_skills"`
	MissingSkills   []string    `json:"missing_skills"`
	Similarity      float64     `json:"similarity"`
	RawText         string      `json:"raw_text"`
	Tier            string      `json:"tier"`
	CertificateRank string      `json:"certificate_rank"`
	Assessment      string      `json:"assessment"`
	Failed          bool        `json:"failed"`
}
