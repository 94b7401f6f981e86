package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type AnalysisHandler struct {
	analysisRepo repositories.AnalysisRepository
	vectorStore  services.VectorStoreService
}

func NewAnalysisHandler(
	analysisRepo repositories.AnalysisRepository,
	vectorStore services.VectorStoreService,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisRepo: analysisRepo,
		vectorStore:  vectorStore,
	}
}

// HandleGetAnalysis handles GET /api/analyses/:id
func (h *AnalysisHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	return c.JSON(toAnalysisResponse(analysis))
}

// HandleListAnalyses handles GET /api/analyses
func (h *AnalysisHandler) HandleListAnalyses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	analyses, err := h.analysisRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list analyses",
		})
	}

	responses := make([]models.AnalysisResponse, 0, len(analyses))
	for i := range analyses {
		responses = append(responses, toAnalysisResponse(&analyses[i]))
	}

	return c.JSON(fiber.Map{
		"analyses": responses,
	})
}

// HandleSearchAnalyses handles POST /api/analyses/search
func (h *AnalysisHandler) HandleSearchAnalyses(c *fiber.Ctx) error {
	var req models.SearchAnalysesRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	limit := req.Limit
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	results, err := h.vectorStore.SearchAnalyses(c.Context(), req.Query, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search analyses",
		})
	}

	return c.JSON(fiber.Map{
		"results": results,
	})
}

func toAnalysisResponse(analysis *models.Analysis) models.AnalysisResponse {
	return models.AnalysisResponse{
		ID:              analysis.ID.String(),
		Industry:        analysis.Industry,
		ExperienceLevel: analysis.ExperienceLevel,
		MatchScore:      analysis.MatchScore,
		Report:          json.RawMessage(analysis.Report),
		CreatedAt:       analysis.CreatedAt,
	}
}
