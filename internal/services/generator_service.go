package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/craftfolio/engine/internal/models"
	appErr "github.com/craftfolio/engine/pkg/errors"
)

// GenerateInput carries the raw sections the user authored. Legacy
// Experience is only fed to the model when neither split list is present:
// new lists win, legacy is a fallback for pre-migration drafts.
type GenerateInput struct {
	Name          string                   `json:"name" validate:"required"`
	Skills        []string                 `json:"skills" validate:"required,min=1"`
	Education     []models.EducationEntry  `json:"education"`
	Experience    []models.ExperienceEntry `json:"experience"`
	Internship    []models.ExperienceEntry `json:"internship"`
	JobExperience []models.ExperienceEntry `json:"jobExperience"`
	Projects      []models.ProjectEntry    `json:"projects"`
}

// GeneratorService expands an authored draft into structured resume prose.
// Failures surface as opaque unavailable errors; no retry is attempted.
type GeneratorService interface {
	Generate(ctx context.Context, in *GenerateInput) (*models.GeneratedResume, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator builds a generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (GeneratorService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, in *GenerateInput) (*models.GeneratedResume, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(buildPrompt(in)),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "resume generation failed")
	}
	return parseGeneration(resp.Text())
}

func buildPrompt(in *GenerateInput) string {
	sections := []string{
		"- Name: " + in.Name,
		"- Skills: " + strings.Join(in.Skills, ", "),
	}

	if len(in.Education) > 0 {
		parts := make([]string, 0, len(in.Education))
		for _, e := range in.Education {
			parts = append(parts, fmt.Sprintf("%s from %s (%s)", e.Degree, e.Institution, e.Year))
		}
		sections = append(sections, "- Education: "+strings.Join(parts, "; "))
	}
	if len(in.Internship) > 0 {
		sections = append(sections, "- Internship Experience: "+experienceText(in.Internship))
	}
	if len(in.JobExperience) > 0 {
		sections = append(sections, "- Job Experience: "+experienceText(in.JobExperience))
	}
	if len(in.Experience) > 0 && len(in.Internship) == 0 && len(in.JobExperience) == 0 {
		sections = append(sections, "- Experience: "+experienceText(in.Experience))
	}
	if len(in.Projects) > 0 {
		parts := make([]string, 0, len(in.Projects))
		for _, p := range in.Projects {
			base := fmt.Sprintf("%s (Tech: %s)", p.Title, p.TechStack)
			if p.Description != "" {
				base += ": " + p.Description
			}
			parts = append(parts, base)
		}
		sections = append(sections, "- Projects: "+strings.Join(parts, "; "))
	}

	var b strings.Builder
	b.WriteString("You are an expert resume writer. Create a professional and detailed resume summary and sections for:\n")
	b.WriteString(strings.Join(sections, "\n"))
	b.WriteString(`

IMPORTANT INSTRUCTIONS:
- Write a compelling professional summary (2-3 sentences)
- For EVERY internship, job, and project: Create AT LEAST 3 detailed bullet points in the description
- DO NOT condense multiple bullet points into a single line
- Each bullet point should start with a strong action verb and include quantifiable achievements when possible
- If the user provided multiple responsibilities/achievements, expand on each one separately
- Organize skills effectively into categories if applicable
- Make each description impactful with specific details and results
- Keep individual bullet points clear and focused, but DO NOT reduce the number of points

Output JSON format with all provided sections:
{
  "summary": "Professional summary highlighting key strengths and experience",
  "skills": ["skill1", "skill2", ...],
`)
	if len(in.Education) > 0 {
		b.WriteString(`  "education": [{"degree": "...", "institution": "...", "year": "..."}],` + "\n")
	}
	if len(in.Internship) > 0 {
		b.WriteString(`  "internship": [{"role": "...", "company": "...", "duration": "...", "description": "` + bulletTemplate + `"}],` + "\n")
	}
	if len(in.JobExperience) > 0 {
		b.WriteString(`  "jobExperience": [{"role": "...", "company": "...", "duration": "...", "description": "` + bulletTemplate + `"}],` + "\n")
	}
	if len(in.Experience) > 0 && len(in.Internship) == 0 && len(in.JobExperience) == 0 {
		b.WriteString(`  "experience": [{"role": "...", "company": "...", "duration": "...", "description": "` + bulletTemplate + `"}],` + "\n")
	}
	if len(in.Projects) > 0 {
		b.WriteString(`  "projects": [{"title": "...", "techStack": "...", "description": "` + bulletTemplate + `"}]` + "\n")
	}
	b.WriteString(`}

CRITICAL: The description field MUST contain multiple bullet points separated by \n (newline). Each bullet point must start with ` + "•" + `. Minimum 3 bullet points per item.
Return only valid JSON. Do not include explanations, markdown, or text before or after the JSON.`)
	return b.String()
}

const bulletTemplate = `• First achievement\\n• Second achievement\\n• Third achievement`

func experienceText(entries []models.ExperienceEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		base := fmt.Sprintf("%s at %s (%s)", e.Role, e.Company, e.Duration)
		if e.Description != "" {
			base += ": " + e.Description
		}
		parts = append(parts, base)
	}
	return strings.Join(parts, "; ")
}

// parseGeneration decodes the model output, stripping markdown code fences
// some models wrap around JSON despite instructions.
func parseGeneration(text string) (*models.GeneratedResume, error) {
	clean := strings.TrimSpace(text)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var out models.GeneratedResume
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "resume generation returned malformed output")
	}
	return &out, nil
}
