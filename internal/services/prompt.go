package services

import (
	"fmt"
	"strings"
)

// promptCharBudget bounds how much of each document is embedded in a prompt.
// Truncation is silent; longer inputs are not an error.
const promptCharBudget = 3000

// industryKeywords is the fixed industry vocabulary used for prompt context.
// Unknown industries are accepted and simply add no keywords.
var industryKeywords = map[string][]string{
	"tech":       {"programming", "cloud", "devops", "agile", "sdlc", "cicd"},
	"finance":    {"accounting", "risk", "excel", "quantitative", "modeling"},
	"healthcare": {"hipaa", "fda", "clinical", "ehr", "phr"},
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the resume-to-job matching prompt.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDesc, industry, experienceLevel string) string {
	industryContext := ""
	if industry != "" {
		key := strings.ToLower(strings.TrimSpace(industry))
		if keywords, ok := industryKeywords[key]; ok {
			industryContext = fmt.Sprintf(
				"\nIndustry Context: The role is in the %s industry. Consider these key %s skills: %s.",
				key, key, strings.Join(keywords, ", "),
			)
		} else {
			industryContext = fmt.Sprintf("\nIndustry Context: The role is in the %s industry.", key)
		}
	}

	return fmt.Sprintf(`Perform advanced resume-to-job matching with these rules:
1. Strict matching for technical skills (85%% similarity threshold)
2. Conceptual matching for soft skills (e.g. debugging is close to problem-solving)
3. Cloud platforms should match specific providers
4. Consider industry context where provided

Candidate experience level: %s
%s

Resume Excerpt:
%s

Job Description:
%s

Return your response in the following JSON format:
{
  "exact_matches": [{"job_skill": string, "resume_skill": string, "confidence": number}],
  "missing_core": [string],
  "industry_analysis": string
}

Return ONLY the JSON, no explanatory text.`,
		experienceLevel,
		industryContext,
		TruncateText(resumeText, promptCharBudget),
		TruncateText(jobDesc, promptCharBudget),
	)
}

// BuildSkillExtractionPrompt creates the prompt for comma-separated skill extraction.
func (pb *PromptBuilder) BuildSkillExtractionPrompt(text string) string {
	return fmt.Sprintf(`Extract all relevant technical and soft skills from the following text.
Include programming languages, frameworks, tools, methodologies, and soft skills.
Return as a comma-separated list, nothing else.

Text:
%s`, TruncateText(text, promptCharBudget))
}

// BuildRewritePrompt creates the prompt for rewriting a resume against a job description.
func (pb *PromptBuilder) BuildRewritePrompt(resumeText, jobDesc string) string {
	return fmt.Sprintf(`You are an expert resume writer. Rewrite the following resume so it is
tailored to the job description, emphasizing the most relevant skills and experience.
Keep every claim truthful to the original resume.

Formatting rules for the output:
- Plain text only, no markdown
- Section headings in UPPERCASE on their own line (e.g. EXPERIENCE, EDUCATION, SKILLS)
- Contact and label lines as "Label: value"
- One bullet or sentence per line

JOB DESCRIPTION:
%s

ORIGINAL RESUME:
%s

Return ONLY the rewritten resume text.`,
		TruncateText(jobDesc, promptCharBudget),
		TruncateText(resumeText, promptCharBudget*2),
	)
}

// TruncateText bounds text to limit runes.
func TruncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
