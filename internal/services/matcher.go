package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"alfredoptarigan/resume-matcher/internal/models"
)

const (
	analysisMethod  = "llm_embedding_hybrid"
	analysisVersion = "3.0"

	// Blend weights for the two match signals; together they sum to 100.
	exactMatchWeight = 70.0
	similarityWeight = 30.0

	// Multiplicative bonus for junior candidates targeting tech roles,
	// clamped to 100 with everything else.
	techJuniorBonus = 1.1
)

// seniorityKeywords classify a job description as senior when any is present.
var seniorityKeywords = []string{"senior", "lead", "principal", "architect", "staff", "5+", "manager"}

type MatcherService interface {
	Analyze(ctx context.Context, resumeText, jobDesc, industry string) *models.MatchReport
}

type matcherService struct {
	gemini        GeminiService
	similarity    SimilarityService
	promptBuilder *PromptBuilder
}

func NewMatcherService(gemini GeminiService, similarity SimilarityService) MatcherService {
	return &matcherService{
		gemini:        gemini,
		similarity:    similarity,
		promptBuilder: NewPromptBuilder(),
	}
}

// Analyze implements MatcherService. It never fails past its boundary: any
// provider or embedding error degrades to a zero-score report with Error set.
func (m *matcherService) Analyze(ctx context.Context, resumeText, jobDesc, industry string) *models.MatchReport {
	experienceLevel := DetectExperienceLevel(jobDesc)

	prompt := m.promptBuilder.BuildAnalysisPrompt(resumeText, jobDesc, industry, experienceLevel)

	response, err := m.gemini.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		log.Printf("❌ Analysis generation failed: %v", err)
		return errorReport(fmt.Sprintf("analysis failed: %v", err), experienceLevel)
	}

	result := ParseModelOutput(response)

	similarity, err := m.similarity.CalculateSimilarity(ctx, resumeText, jobDesc)
	if err != nil {
		log.Printf("❌ Similarity calculation failed: %v", err)
		return errorReport(fmt.Sprintf("analysis failed: %v", err), experienceLevel)
	}

	return m.buildReport(result, similarity, industry, experienceLevel)
}

// DetectExperienceLevel classifies a job description as senior or junior by
// scanning for a fixed keyword set, case-insensitively.
func DetectExperienceLevel(jobDesc string) string {
	lowered := strings.ToLower(jobDesc)
	for _, keyword := range seniorityKeywords {
		if strings.Contains(lowered, keyword) {
			return "senior"
		}
	}
	return "junior"
}

// ParseModelOutput parses the model's response text into a RawModelResult.
// It never fails: a direct parse is tried first, then the substring between
// the first '{' and the last '}' (models often wrap JSON in prose or code
// fences), and finally an empty result.
func ParseModelOutput(text string) *models.RawModelResult {
	cleaned := strings.TrimSpace(text)

	var result models.RawModelResult
	if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
		return &result
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start != -1 && end > start {
		var fallback models.RawModelResult
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &fallback); err == nil {
			return &fallback
		}
	}

	return &models.RawModelResult{
		ExactMatches: []models.SkillMatch{},
		MissingCore:  []string{},
	}
}

func (m *matcherService) buildReport(result *models.RawModelResult, similarity *models.SimilarityResult, industry, experienceLevel string) *models.MatchReport {
	exactCount := len(result.ExactMatches)
	missingCount := len(result.MissingCore)

	exactScore := 0.0
	if exactCount+missingCount > 0 {
		exactScore = float64(exactCount) / float64(exactCount+missingCount) * exactMatchWeight
	}

	similarityScore := similarity.CombinedScore * similarityWeight

	finalScore := exactScore + similarityScore

	bonusApplied := strings.EqualFold(strings.TrimSpace(industry), "tech") && experienceLevel == "junior"
	if bonusApplied {
		finalScore *= techJuniorBonus
	}

	if finalScore > 100 {
		finalScore = 100
	}
	if finalScore < 0 {
		finalScore = 0
	}
	finalScore = math.Round(finalScore*100) / 100

	matchedSkills := make([]string, 0, exactCount)
	for _, match := range result.ExactMatches {
		matchedSkills = append(matchedSkills, fmt.Sprintf("%s → %s", match.JobSkill, match.ResumeSkill))
	}

	missingCore := result.MissingCore
	if missingCore == nil {
		missingCore = []string{}
	}

	industryAnalysis := result.IndustryAnalysis
	if industryAnalysis == "" {
		if industry != "" {
			industryAnalysis = fmt.Sprintf("No industry analysis performed for %s", industry)
		} else {
			industryAnalysis = "No industry specified"
		}
	}

	return &models.MatchReport{
		MatchScore:        finalScore,
		MatchedSkills:     matchedSkills,
		MissingCoreSkills: missingCore,
		IndustryAnalysis:  industryAnalysis,
		ExperienceLevel:   experienceLevel,
		ScoreBreakdown: models.ScoreBreakdown{
			ExactMatches: exactCount,
			MissingCore:  missingCount,
			ExactScore:   exactScore,
			CosineSimilarity: models.CosineBreakdown{
				Overall:      similarity.OverallScore,
				Skills:       similarity.SkillSimilarity,
				Contribution: similarityScore,
			},
			BonusApplied: bonusApplied,
		},
		AnalysisMethod: analysisMethod,
		Version:        analysisVersion,
	}
}

func errorReport(message, experienceLevel string) *models.MatchReport {
	return &models.MatchReport{
		MatchScore:        0,
		MatchedSkills:     []string{},
		MissingCoreSkills: []string{},
		IndustryAnalysis:  "",
		ExperienceLevel:   experienceLevel,
		AnalysisMethod:    analysisMethod,
		Version:           analysisVersion,
		Error:             message,
	}
}
