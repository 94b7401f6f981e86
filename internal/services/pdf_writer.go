package services

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
)

type PDFWriterService interface {
	Render(text string) ([]byte, error)
}

type pdfWriterService struct{}

func NewPDFWriterService() PDFWriterService {
	return &pdfWriterService{}
}

// Render turns rewritten resume text into a styled PDF. Uppercase lines
// become centered headings, "label: value" lines get a bold label, everything
// else is body text.
func (w *pdfWriterService) Render(text string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetTitle("Rewritten Resume", true)
	doc.SetMargins(15, 20, 15)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case isHeadingLine(line):
			doc.SetFont("Helvetica", "B", 16)
			doc.CellFormat(0, 9, tr(line), "", 1, "C", false, 0, "")
			doc.Ln(2)
		case strings.Contains(line, ":"):
			label, value, _ := strings.Cut(line, ":")
			doc.SetFont("Helvetica", "B", 11)
			doc.Write(5.5, tr(strings.TrimSpace(label)+": "))
			doc.SetFont("Helvetica", "", 11)
			doc.Write(5.5, tr(strings.TrimSpace(value)))
			doc.Ln(8)
		default:
			doc.SetFont("Helvetica", "", 11)
			doc.MultiCell(0, 5.5, tr(line), "", "L", false)
			doc.Ln(2)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// isHeadingLine reports whether a line is all-uppercase, the convention the
// rewrite prompt requests for section headings.
func isHeadingLine(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
