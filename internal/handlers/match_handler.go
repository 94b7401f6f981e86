package handlers

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

const excerptLength = 500

type MatchHandler struct {
	matcher      services.MatcherService
	analysisRepo repositories.AnalysisRepository
	vectorStore  services.VectorStoreService
}

func NewMatchHandler(
	matcher services.MatcherService,
	analysisRepo repositories.AnalysisRepository,
	vectorStore services.VectorStoreService,
) *MatchHandler {
	return &MatchHandler{
		matcher:      matcher,
		analysisRepo: analysisRepo,
		vectorStore:  vectorStore,
	}
}

// HandleMatch handles POST /api/match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	var req models.MatchRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.ResumeText) == "" || strings.TrimSpace(req.JobDesc) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing fields",
		})
	}

	report := h.matcher.Analyze(c.Context(), req.ResumeText, req.JobDesc, req.Industry)

	// Degraded reports are still returned to the caller; only clean analyses
	// are worth keeping in history.
	if report.Error == "" {
		h.recordAnalysis(c.Context(), &req, report)
	}

	return c.JSON(report)
}

// recordAnalysis persists and indexes a completed analysis. Best effort: a
// storage failure never fails the match request.
func (h *MatchHandler) recordAnalysis(ctx context.Context, req *models.MatchRequest, report *models.MatchReport) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		log.Printf("⚠️  Failed to serialize report for history: %v", err)
		return
	}

	analysis := &models.Analysis{
		ID:              uuid.New(),
		ResumeExcerpt:   excerpt(req.ResumeText, excerptLength),
		JobExcerpt:      excerpt(req.JobDesc, excerptLength),
		Industry:        strings.ToLower(strings.TrimSpace(req.Industry)),
		ExperienceLevel: report.ExperienceLevel,
		MatchScore:      report.MatchScore,
		Report:          string(reportJSON),
	}

	if err := h.analysisRepo.Create(analysis); err != nil {
		log.Printf("⚠️  Failed to persist analysis: %v", err)
		return
	}

	if h.vectorStore != nil {
		if err := h.vectorStore.IndexAnalysis(ctx, analysis.ID, req.ResumeText, analysis.JobExcerpt, report.MatchScore); err != nil {
			log.Printf("⚠️  Failed to index analysis %s: %v", analysis.ID, err)
		}
	}
}

func excerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
