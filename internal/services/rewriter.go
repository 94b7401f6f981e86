package services

import (
	"context"
	"fmt"
	"strings"
)

type RewriteService interface {
	RewriteResume(ctx context.Context, resumeText, jobDesc string) (string, error)
}

type rewriteService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewRewriteService(gemini GeminiService, maxRetries int) RewriteService {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &rewriteService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// RewriteResume implements RewriteService.
func (r *rewriteService) RewriteResume(ctx context.Context, resumeText, jobDesc string) (string, error) {
	prompt := r.promptBuilder.BuildRewritePrompt(resumeText, jobDesc)

	response, err := r.gemini.GenerateTextWithRetry(ctx, prompt, 0.4, r.maxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to rewrite resume: %w", err)
	}

	rewritten := strings.TrimSpace(response)
	if rewritten == "" {
		return "", fmt.Errorf("model returned an empty rewritten resume")
	}

	return rewritten, nil
}
