package services

import (
	"bytes"
	"testing"
)

func TestRenderProducesPDF(t *testing.T) {
	writer := NewPDFWriterService()

	text := "JOHN DOE\nEmail: john@example.com\nEXPERIENCE\nBuilt backend services in Go and Python.\nSKILLS\nGo, Python, Docker"

	data, err := writer.Render(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF header, got %q", data[:min(8, len(data))])
	}
}

func TestRenderEmptyText(t *testing.T) {
	writer := NewPDFWriterService()

	data, err := writer.Render("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected a valid empty PDF document")
	}
}

func TestIsHeadingLine(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"EXPERIENCE", true},
		{"WORK HISTORY", true},
		{"Experience", false},
		{"", false},
		{"123-456", false},
	}

	for _, tc := range cases {
		if got := isHeadingLine(tc.line); got != tc.want {
			t.Errorf("isHeadingLine(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}
