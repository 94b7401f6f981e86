package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/services"
)

type RewriteHandler struct {
	pdfParser   services.PDFParserService
	rewriter    services.RewriteService
	pdfWriter   services.PDFWriterService
	maxFileSize int64
}

func NewRewriteHandler(
	pdfParser services.PDFParserService,
	rewriter services.RewriteService,
	pdfWriter services.PDFWriterService,
	maxFileSize int64,
) *RewriteHandler {
	return &RewriteHandler{
		pdfParser:   pdfParser,
		rewriter:    rewriter,
		pdfWriter:   pdfWriter,
		maxFileSize: maxFileSize,
	}
}

// HandleRewrite handles POST /api/rewrite_resume
func (h *RewriteHandler) HandleRewrite(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	jobDescription := c.FormValue("job_description")

	if err != nil || strings.TrimSpace(jobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "PDF resume file and job description are required.",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume file too large.",
		})
	}

	resumeText, err := h.pdfParser.ExtractFromMultipart(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if strings.TrimSpace(resumeText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume text extraction failed. PDF may be empty or not selectable.",
		})
	}

	rewritten, err := h.rewriter.RewriteResume(c.Context(), resumeText, jobDescription)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	pdfBytes, err := h.pdfWriter.Render(rewritten)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="Rewritten_Resume.pdf"`)
	return c.Send(pdfBytes)
}
