package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/code-explainer-api/internal/constants"
	"github.com/yukikurage/code-explainer-api/internal/models"
)

// CodeAnalyzer turns source code into an analysis document. Implementations
// never fail: problems are reported in-band through the document's error
// field.
type CodeAnalyzer interface {
	AnalyzeCode(ctx context.Context, code string) *models.AnalysisResult
}

const analysisSystemPrompt = "You are a professional Senior Software Engineer. " +
	"Your task is to analyze code and provide a structured technical review. " +
	"You MUST return the output as a valid JSON object. " +
	"Do not include any conversational text, markdown formatting, or 'json' code blocks."

// analysisSchema is shown to the model as the shape to fill in.
var analysisSchema = map[string]any{
	"heading":          "A very short, clear title describing what the code does.",
	"summary":          "A concise but clear explanation of the overall purpose and behavior of the code.",
	"logic_breakdown":  []string{"Step-by-step explanation of the main logic in simple terms."},
	"potential_issues": []string{"Possible bugs, edge cases, or scenarios where the code may fail or behave unexpectedly."},
	"time_complexity": map[string]string{
		"notation":    "Big O time complexity (e.g., O(n), O(n^2))",
		"explanation": "Short explanation of why this time complexity applies.",
	},
	"space_complexity": map[string]string{
		"notation":    "Big O space complexity",
		"explanation": "Short explanation of memory usage.",
	},
	"improvements": []string{"Concrete suggestions to improve performance, readability, or maintainability."},
}

var (
	errAINotConfigured = errors.New("AI client not initialized")
	errNoChoices       = errors.New("no response from model")
	errEmptyAnalysis   = errors.New("analysis has neither heading nor summary")
)

// AIConfig selects the OpenAI-compatible endpoint and model.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// AIService is the analysis gateway backed by an OpenAI-compatible chat
// completion API.
type AIService struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewAIService creates the gateway. With an empty API key every analysis
// returns the failure document.
func NewAIService(cfg AIConfig, logger *slog.Logger) *AIService {
	s := &AIService{
		model:  cfg.Model,
		logger: logger,
	}
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		s.client = openai.NewClientWithConfig(clientCfg)
	}
	return s
}

// AnalyzeCode asks the model for a structured review of code.
func (s *AIService) AnalyzeCode(ctx context.Context, code string) (result *models.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "code analysis panicked", "panic", fmt.Sprint(r))
			result = models.AnalysisError(constants.AnalysisFailedReason)
		}
	}()

	analysis, err := s.analyze(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "code analysis failed", "error", err, "model", s.model)
		return models.AnalysisError(constants.AnalysisFailedReason)
	}
	return analysis
}

func (s *AIService) analyze(ctx context.Context, code string) (*models.AnalysisResult, error) {
	if s.client == nil {
		return nil, errAINotConfigured
	}

	schema, err := json.Marshal(analysisSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: analysisSystemPrompt + "\nSchema: " + string(schema),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: "Analyze this code and fill the following JSON schema:\n\n" + code,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errNoChoices
	}

	return parseAnalysis(resp.Choices[0].Message.Content)
}

// parseAnalysis decodes the model's reply, tolerating a markdown fence
// around the JSON.
func parseAnalysis(content string) (*models.AnalysisResult, error) {
	content = stripCodeFence(content)

	var analysis models.AnalysisResult
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	// The model does not get to claim failure on our behalf.
	analysis.Error = ""

	if strings.TrimSpace(analysis.Heading) == "" && strings.TrimSpace(analysis.Summary) == "" {
		return nil, errEmptyAnalysis
	}
	return &analysis, nil
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if nl := strings.IndexByte(content, '\n'); nl >= 0 {
		// Drop the language tag line ("json").
		content = content[nl+1:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
