package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"alfredoptarigan/resume-matcher/internal/models"
)

type stubGemini struct {
	textResponse string
	textErr      error
	embeddings   map[string][]float32
	embedErr     error
	lastPrompt   string
}

func (s *stubGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	s.lastPrompt = prompt
	if s.textErr != nil {
		return "", s.textErr
	}
	return s.textResponse, nil
}

func (s *stubGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return s.GenerateText(ctx, prompt, temperature)
}

func (s *stubGemini) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	if vec, ok := s.embeddings[text]; ok {
		return vec, nil
	}
	return []float32{1, 0, 0}, nil
}

type stubSimilarity struct {
	result *models.SimilarityResult
	err    error
}

func (s *stubSimilarity) CalculateSimilarity(_ context.Context, _, _ string) (*models.SimilarityResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestAnalyzeFullMatch(t *testing.T) {
	gemini := &stubGemini{
		textResponse: `{"exact_matches": [{"job_skill": "Python", "resume_skill": "Python"}, {"job_skill": "Flask", "resume_skill": "Flask"}], "missing_core": [], "industry_analysis": "Strong fit"}`,
	}
	similarity := &stubSimilarity{
		result: &models.SimilarityResult{OverallScore: 1, SkillSimilarity: 1, CombinedScore: 1},
	}
	matcher := NewMatcherService(gemini, similarity)

	report := matcher.Analyze(context.Background(), "Python, Flask, ML", "Seeking Python developer with Flask experience", "")

	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}

	if report.MatchScore != 100 {
		t.Fatalf("expected score 100, got %v", report.MatchScore)
	}

	expected := []string{"Python → Python", "Flask → Flask"}
	if !reflect.DeepEqual(report.MatchedSkills, expected) {
		t.Fatalf("unexpected matched skills: %v", report.MatchedSkills)
	}

	if report.ExperienceLevel != "junior" {
		t.Fatalf("expected junior level, got %s", report.ExperienceLevel)
	}

	if report.ScoreBreakdown.ExactScore != 70 {
		t.Fatalf("expected exact component 70, got %v", report.ScoreBreakdown.ExactScore)
	}

	if report.ScoreBreakdown.CosineSimilarity.Contribution != 30 {
		t.Fatalf("expected similarity contribution 30, got %v", report.ScoreBreakdown.CosineSimilarity.Contribution)
	}

	if report.IndustryAnalysis != "Strong fit" {
		t.Fatalf("unexpected industry analysis: %s", report.IndustryAnalysis)
	}

	if gemini.lastPrompt == "" {
		t.Fatalf("expected prompt to be sent")
	}
}

func TestAnalyzeParsesResponseWrappedInProse(t *testing.T) {
	gemini := &stubGemini{
		textResponse: `Here you go: {"exact_matches": [{"job_skill": "Go", "resume_skill": "Go"}], "missing_core": ["Kubernetes"], "industry_analysis": ""} thanks`,
	}
	similarity := &stubSimilarity{
		result: &models.SimilarityResult{OverallScore: 0.5, SkillSimilarity: 0.5, CombinedScore: 0.5},
	}
	matcher := NewMatcherService(gemini, similarity)

	report := matcher.Analyze(context.Background(), "resume", "job", "")

	if report.Error != "" {
		t.Fatalf("unexpected error: %s", report.Error)
	}

	if report.ScoreBreakdown.ExactMatches != 1 || report.ScoreBreakdown.MissingCore != 1 {
		t.Fatalf("unexpected counts: %+v", report.ScoreBreakdown)
	}

	// 1/2 * 70 + 0.5 * 30 = 50
	if report.MatchScore != 50 {
		t.Fatalf("expected score 50, got %v", report.MatchScore)
	}
}

func TestAnalyzeNonJSONResponseDegradesToEmptyResult(t *testing.T) {
	gemini := &stubGemini{textResponse: "I cannot help with that."}
	similarity := &stubSimilarity{
		result: &models.SimilarityResult{OverallScore: 0.5, SkillSimilarity: 0.5, CombinedScore: 0.5},
	}
	matcher := NewMatcherService(gemini, similarity)

	report := matcher.Analyze(context.Background(), "resume", "job", "")

	if report.Error != "" {
		t.Fatalf("parsing failure should not be fatal, got error: %s", report.Error)
	}

	if len(report.MatchedSkills) != 0 || len(report.MissingCoreSkills) != 0 {
		t.Fatalf("expected empty skill lists, got %+v", report)
	}

	// Exact component is 0 with a zero denominator; only similarity contributes.
	if report.MatchScore != 15 {
		t.Fatalf("expected score 15, got %v", report.MatchScore)
	}
}

func TestAnalyzeGeneratorFailure(t *testing.T) {
	gemini := &stubGemini{textErr: errors.New("quota exceeded")}
	similarity := &stubSimilarity{
		result: &models.SimilarityResult{OverallScore: 1, SkillSimilarity: 1, CombinedScore: 1},
	}
	matcher := NewMatcherService(gemini, similarity)

	report := matcher.Analyze(context.Background(), "resume", "job", "")

	if report.Error == "" {
		t.Fatalf("expected error to be populated")
	}

	if report.MatchScore != 0 {
		t.Fatalf("expected zero score, got %v", report.MatchScore)
	}

	if len(report.MatchedSkills) != 0 {
		t.Fatalf("expected no matched skills, got %v", report.MatchedSkills)
	}
}

func TestAnalyzeSimilarityFailure(t *testing.T) {
	gemini := &stubGemini{textResponse: `{"exact_matches": [], "missing_core": [], "industry_analysis": ""}`}
	similarity := &stubSimilarity{err: errors.New("embedding model unavailable")}
	matcher := NewMatcherService(gemini, similarity)

	report := matcher.Analyze(context.Background(), "resume", "job", "")

	if report.Error == "" {
		t.Fatalf("expected error to be populated")
	}

	if report.MatchScore != 0 {
		t.Fatalf("expected zero score, got %v", report.MatchScore)
	}
}

func TestAnalyzeTechJuniorBonus(t *testing.T) {
	gemini := &stubGemini{
		textResponse: `{"exact_matches": [{"job_skill": "Go", "resume_skill": "Go"}], "missing_core": ["Docker"], "industry_analysis": "ok"}`,
	}
	similarity := &stubSimilarity{
		result: &models.SimilarityResult{OverallScore: 0.5, SkillSimilarity: 0.5, CombinedScore: 0.5},
	}
	matcher := NewMatcherService(gemini, similarity)

	report := matcher.Analyze(context.Background(), "resume", "entry level developer role", "Tech")

	// (1/2 * 70 + 0.5 * 30) * 1.1 = 55
	if report.MatchScore != 55 {
		t.Fatalf("expected score 55, got %v", report.MatchScore)
	}

	if !report.ScoreBreakdown.BonusApplied {
		t.Fatalf("expected bonus to be applied")
	}
}

func TestAnalyzeBonusSkippedForSeniorRoles(t *testing.T) {
	gemini := &stubGemini{
		textResponse: `{"exact_matches": [{"job_skill": "Go", "resume_skill": "Go"}], "missing_core": ["Docker"], "industry_analysis": "ok"}`,
	}
	similarity := &stubSimilarity{
		result: &models.SimilarityResult{OverallScore: 0.5, SkillSimilarity: 0.5, CombinedScore: 0.5},
	}
	matcher := NewMatcherService(gemini, similarity)

	report := matcher.Analyze(context.Background(), "resume", "Senior engineer, 5+ years required", "tech")

	if report.ExperienceLevel != "senior" {
		t.Fatalf("expected senior level, got %s", report.ExperienceLevel)
	}

	if report.ScoreBreakdown.BonusApplied {
		t.Fatalf("bonus must not apply to senior roles")
	}

	if report.MatchScore != 50 {
		t.Fatalf("expected score 50, got %v", report.MatchScore)
	}
}

func TestAnalyzeScoreClamped(t *testing.T) {
	gemini := &stubGemini{
		textResponse: `{"exact_matches": [{"job_skill": "A", "resume_skill": "A"}], "missing_core": [], "industry_analysis": ""}`,
	}
	similarity := &stubSimilarity{
		result: &models.SimilarityResult{OverallScore: 1, SkillSimilarity: 1, CombinedScore: 1},
	}
	matcher := NewMatcherService(gemini, similarity)

	// Full exact match plus full similarity plus the bonus would exceed 100.
	report := matcher.Analyze(context.Background(), "resume", "entry level role", "tech")

	if report.MatchScore != 100 {
		t.Fatalf("expected clamped score 100, got %v", report.MatchScore)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	newMatcher := func() MatcherService {
		gemini := &stubGemini{
			textResponse: `{"exact_matches": [{"job_skill": "Go", "resume_skill": "Go"}], "missing_core": ["Docker", "Docker"], "industry_analysis": "fine"}`,
		}
		similarity := &stubSimilarity{
			result: &models.SimilarityResult{OverallScore: 0.25, SkillSimilarity: 0.75, CombinedScore: 0.55},
		}
		return NewMatcherService(gemini, similarity)
	}

	first := newMatcher().Analyze(context.Background(), "resume", "job", "finance")
	second := newMatcher().Analyze(context.Background(), "resume", "job", "finance")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different reports:\n%+v\n%+v", first, second)
	}

	// Duplicate missing skills pass through verbatim, no dedup.
	if len(first.MissingCoreSkills) != 2 {
		t.Fatalf("expected duplicates preserved, got %v", first.MissingCoreSkills)
	}
}

func TestDetectExperienceLevel(t *testing.T) {
	cases := []struct {
		jobDesc string
		want    string
	}{
		{"Seeking a Senior Backend Engineer", "senior"},
		{"Tech Lead for our platform team", "senior"},
		{"Principal Architect position", "senior"},
		{"Requires 5+ years of experience", "senior"},
		{"Engineering Manager", "senior"},
		{"Entry level developer position", "junior"},
		{"", "junior"},
	}

	for _, tc := range cases {
		if got := DetectExperienceLevel(tc.jobDesc); got != tc.want {
			t.Errorf("DetectExperienceLevel(%q) = %q, want %q", tc.jobDesc, got, tc.want)
		}
	}
}

func TestParseModelOutput(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		result := ParseModelOutput(`{"exact_matches": [{"job_skill": "Go", "resume_skill": "Go"}], "missing_core": ["K8s"], "industry_analysis": "x"}`)
		if len(result.ExactMatches) != 1 || len(result.MissingCore) != 1 {
			t.Fatalf("unexpected result: %+v", result)
		}
	})

	t.Run("code fence", func(t *testing.T) {
		result := ParseModelOutput("```json\n{\"exact_matches\": [], \"missing_core\": [\"Rust\"], \"industry_analysis\": \"y\"}\n```")
		if len(result.MissingCore) != 1 || result.MissingCore[0] != "Rust" {
			t.Fatalf("unexpected result: %+v", result)
		}
	})

	t.Run("wrapped in prose", func(t *testing.T) {
		result := ParseModelOutput(`Sure! Here is the analysis: {"exact_matches": [], "missing_core": [], "industry_analysis": "z"} Hope it helps.`)
		if result.IndustryAnalysis != "z" {
			t.Fatalf("unexpected result: %+v", result)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		result := ParseModelOutput("no json here at all")
		if result == nil {
			t.Fatalf("expected empty result, got nil")
		}
		if len(result.ExactMatches) != 0 || len(result.MissingCore) != 0 || result.IndustryAnalysis != "" {
			t.Fatalf("expected empty default, got %+v", result)
		}
	})
}
