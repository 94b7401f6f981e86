package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type SkillExtractorService interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}

type skillExtractorService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

func NewSkillExtractorService(gemini GeminiService) SkillExtractorService {
	return &skillExtractorService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

// ExtractSkills implements SkillExtractorService.
func (s *skillExtractorService) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	prompt := s.promptBuilder.BuildSkillExtractionPrompt(text)

	response, err := s.gemini.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		return nil, fmt.Errorf("failed to extract skills: %w", err)
	}

	return ParseSkillList(response), nil
}

// ParseSkillList turns the model's comma-separated skill output into a clean list.
func ParseSkillList(response string) []string {
	response = strings.ReplaceAll(strings.TrimSpace(response), "\n", "")

	parts := strings.Split(response, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			skills = append(skills, part)
		}
	}

	return skills
}

// Skill synonym database (could be moved to DB later).
var skillSynonyms = map[string]string{
	"aws":             "amazon web services",
	"gcp":             "google cloud platform",
	"js":              "javascript",
	"ts":              "typescript",
	"ai":              "artificial intelligence",
	"ml":              "machine learning",
	"cloud platforms": "cloud computing",
	"amazon s3":       "aws s3",
}

var proficiencyPattern = regexp.MustCompile(`\(.*?\)`)

// NormalizeSkill standardizes skill names with special handling for cloud skills.
func NormalizeSkill(skill string) string {
	skill = strings.ToLower(strings.TrimSpace(skill))

	// Handle special cases first
	if strings.Contains(skill, "aws") && !strings.Contains(skill, "s3") {
		return "amazon web services"
	}
	if canonical, ok := skillSynonyms[skill]; ok {
		return canonical
	}

	// Remove proficiency levels (e.g. "Python (advanced)" -> "python")
	skill = proficiencyPattern.ReplaceAllString(skill, "")

	return strings.TrimSpace(skill)
}

var skillSeparators = regexp.MustCompile(`[,;/\|]`)

// PreprocessSkills converts free-form skills text into a sorted, deduplicated
// list of normalized skill names. Sorting keeps downstream embeddings
// deterministic for identical inputs.
func PreprocessSkills(text string) []string {
	seen := make(map[string]struct{})
	for _, part := range skillSeparators.Split(text, -1) {
		skill := NormalizeSkill(part)
		if skill == "" {
			continue
		}
		seen[skill] = struct{}{}
	}

	skills := make([]string, 0, len(seen))
	for skill := range seen {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return skills
}
