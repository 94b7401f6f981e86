package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type UploadHandler struct {
	pdfParser      services.PDFParserService
	skillExtractor services.SkillExtractorService
	maxFileSize    int64
}

func NewUploadHandler(
	pdfParser services.PDFParserService,
	skillExtractor services.SkillExtractorService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		pdfParser:      pdfParser,
		skillExtractor: skillExtractor,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /api/upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume uploaded",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	text, err := h.pdfParser.ExtractFromMultipart(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	skills, err := h.skillExtractor.ExtractSkills(c.Context(), text)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.UploadResponse{
		ResumeText: text,
		Skills:     skills,
	})
}
