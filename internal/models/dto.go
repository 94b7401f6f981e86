package models

import (
	"encoding/json"
	"time"
)

type MatchRequest struct {
	ResumeText string `json:"resume_text"`
	JobDesc    string `json:"job_desc"`
	Industry   string `json:"industry,omitempty"`
}

type UploadResponse struct {
	ResumeText string   `json:"resume_text"`
	Skills     []string `json:"skills"`
}

// SkillMatch is one exact job-skill to resume-skill pairing reported by the model.
type SkillMatch struct {
	JobSkill    string  `json:"job_skill"`
	ResumeSkill string  `json:"resume_skill"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// RawModelResult is the structured portion of the model's analysis response.
// Every field defaults to empty when the response is partial or unparseable.
type RawModelResult struct {
	ExactMatches     []SkillMatch `json:"exact_matches"`
	MissingCore      []string     `json:"missing_core"`
	IndustryAnalysis string       `json:"industry_analysis"`
}

type SimilarityResult struct {
	OverallScore    float64 `json:"overall_score"`
	SkillSimilarity float64 `json:"skill_similarity"`
	CombinedScore   float64 `json:"combined_score"`
}

type CosineBreakdown struct {
	Overall      float64 `json:"overall"`
	Skills       float64 `json:"skills"`
	Contribution float64 `json:"contribution"`
}

// ScoreBreakdown exposes the raw counts and unrounded component scores so the
// blending policy is auditable independent of the final rounded number.
type ScoreBreakdown struct {
	ExactMatches     int             `json:"exact_matches"`
	MissingCore      int             `json:"missing_core"`
	ExactScore       float64         `json:"exact_score"`
	CosineSimilarity CosineBreakdown `json:"cosine_similarity"`
	BonusApplied     bool            `json:"bonus_applied"`
}

// MatchReport is the response entity of one resume-vs-job analysis.
type MatchReport struct {
	MatchScore        float64        `json:"match_score"`
	MatchedSkills     []string       `json:"matched_skills"`
	MissingCoreSkills []string       `json:"missing_core_skills"`
	IndustryAnalysis  string         `json:"industry_analysis"`
	ExperienceLevel   string         `json:"experience_level"`
	ScoreBreakdown    ScoreBreakdown `json:"score_breakdown"`
	AnalysisMethod    string         `json:"analysis_method"`
	Version           string         `json:"version"`
	Error             string         `json:"error,omitempty"`
}

type AnalysisResponse struct {
	ID              string          `json:"id"`
	Industry        string          `json:"industry"`
	ExperienceLevel string          `json:"experience_level"`
	MatchScore      float64         `json:"match_score"`
	Report          json.RawMessage `json:"report"`
	CreatedAt       time.Time       `json:"created_at"`
}

type SearchAnalysesRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}
