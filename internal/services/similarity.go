package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/resume-matcher/internal/models"
)

// Combined-score weighting: skill overlap is weighted more heavily than
// general textual similarity.
const (
	skillSimilarityWeight   = 0.6
	overallSimilarityWeight = 0.4
)

type SimilarityService interface {
	CalculateSimilarity(ctx context.Context, resumeText, jobDesc string) (*models.SimilarityResult, error)
}

type similarityService struct {
	gemini GeminiService
	skills SkillExtractorService
}

func NewSimilarityService(gemini GeminiService, skills SkillExtractorService) SimilarityService {
	return &similarityService{
		gemini: gemini,
		skills: skills,
	}
}

// CalculateSimilarity implements SimilarityService.
func (s *similarityService) CalculateSimilarity(ctx context.Context, resumeText, jobDesc string) (*models.SimilarityResult, error) {
	// Full text similarity
	resumeEmbedding, err := s.gemini.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed resume text: %w", err)
	}

	jobEmbedding, err := s.gemini.GenerateEmbedding(ctx, jobDesc)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	overallScore := CosineSimilarity(resumeEmbedding, jobEmbedding)

	// Skill-based similarity
	resumeSkills, err := s.extractSkillSet(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	jobSkills, err := s.extractSkillSet(ctx, jobDesc)
	if err != nil {
		return nil, err
	}

	skillSimilarity := 0.0
	if len(resumeSkills) > 0 && len(jobSkills) > 0 {
		resumeSkillEmbedding, err := s.gemini.GenerateEmbedding(ctx, strings.Join(resumeSkills, " "))
		if err != nil {
			return nil, fmt.Errorf("failed to embed resume skills: %w", err)
		}

		jobSkillEmbedding, err := s.gemini.GenerateEmbedding(ctx, strings.Join(jobSkills, " "))
		if err != nil {
			return nil, fmt.Errorf("failed to embed job skills: %w", err)
		}

		skillSimilarity = CosineSimilarity(resumeSkillEmbedding, jobSkillEmbedding)
	}

	combinedScore := skillSimilarityWeight*skillSimilarity + overallSimilarityWeight*overallScore

	return &models.SimilarityResult{
		OverallScore:    overallScore,
		SkillSimilarity: skillSimilarity,
		CombinedScore:   combinedScore,
	}, nil
}

func (s *similarityService) extractSkillSet(ctx context.Context, text string) ([]string, error) {
	skills, err := s.skills.ExtractSkills(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract skill set: %w", err)
	}

	return PreprocessSkills(strings.Join(skills, ", ")), nil
}

// CosineSimilarity returns the normalized dot product of two vectors.
// Mismatched or zero-length vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
