// Package gemini generates multiple-choice questions with Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mcq-generator/internal/domain"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements domain.QuestionGenerator at compile time.
var _ domain.QuestionGenerator = (*Generator)(nil)

// contentGenerator is the subset of *genai.Models the generator calls
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator implements domain.QuestionGenerator using Gemini
type Generator struct {
	models contentGenerator
	model  string
	logger domain.Logger
}

// NewGenerator creates a new Generator from a genai client
func NewGenerator(client *genai.Client, model string, logger domain.Logger) *Generator {
	return newGenerator(client.Models, model, logger)
}

func newGenerator(models contentGenerator, model string, logger domain.Logger) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{models: models, model: model, logger: logger}
}

// NewClient builds a genai client. An API key selects the Gemini API
// backend; otherwise project and location select Vertex AI.
func NewClient(ctx context.Context, apiKey, project, location string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{}
	switch {
	case apiKey != "":
		cfg.APIKey = apiKey
		cfg.Backend = genai.BackendGeminiAPI
	case project != "" && location != "":
		cfg.Project = project
		cfg.Location = location
		cfg.Backend = genai.BackendVertexAI
	default:
		return nil, errors.New("gemini: either GEMINI_API_KEY or GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION must be set")
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client, nil
}

// Generate implements domain.QuestionGenerator
func (g *Generator) Generate(ctx context.Context, notes string) (string, error) {
	if strings.TrimSpace(notes) == "" {
		return "", &domain.ValidationError{Field: "notes", Message: "notes are required"}
	}

	result, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: BuildPrompt(notes)}},
		}},
		nil,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", errors.New("gemini returned nil result")
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini returned an empty response")
	}
	g.logger.Debug("Generated MCQs", "model", g.model, "chars", len([]rune(text)))
	return text, nil
}

// BuildPrompt wraps the extracted notes in the MCQ instructions
func BuildPrompt(notes string) string {
	var sb strings.Builder
	sb.WriteString("Generate 15-50 (depending on the length and contents of the note) highly advanced, ")
	sb.WriteString("real-life applicable multiple-choice questions (MCQs) based on the following notes. ")
	sb.WriteString("Each question should have 4 options (A, B, C, D) with one correct answer marked with ✅. ")
	sb.WriteString("Focus on complex, practical, applied-learning scenarios that require critical thinking and ")
	sb.WriteString("real-world problem-solving skills, rather than rote memorization. ")
	sb.WriteString("Ensure the questions are challenging and suitable for professionals or advanced learners in the relevant field.\n\n")
	sb.WriteString("Notes:\n")
	sb.WriteString(notes)
	return sb.String()
}

// Unavailable is the generator used when no Gemini backend is configured.
// Every call fails with the configuration error, which callers surface as
// the generation failure text.
type Unavailable struct {
	Err error
}

// Generate implements domain.QuestionGenerator
func (u Unavailable) Generate(ctx context.Context, notes string) (string, error) {
	return "", u.Err
}
