package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"civiclens/internal/models"
)

// OpenAIProvider implements TextClassifier, AbstractiveSummarizer and
// Describer against the OpenAI chat completion API. A provider without an
// API key is disabled: every call returns models.ErrProviderDisabled and
// the orchestrators fall back to their deterministic paths.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIProvider creates the provider. The client is constructed
// exactly once here, at startup, and shared by all requests.
func NewOpenAIProvider(apiKey, model string, timeout time.Duration) *OpenAIProvider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		log.Warn("OpenAI API key not provided. Text model collaborators will be disabled.")
		return &OpenAIProvider{client: nil}
	}

	log.Infof("OpenAI provider initialized with model %s", model)
	return &OpenAIProvider{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

type classifyReply struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// ClassifyText runs a zero-shot classification over the fixed category
// list. Confidence comes back on the 0-100 scale.
func (p *OpenAIProvider) ClassifyText(ctx context.Context, text string) (string, float64, error) {
	if p.client == nil {
		return models.CategoryUncategorized, 0.0, models.ErrProviderDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Classify the following civic complaint into exactly one of these categories: %s.\n"+
			"Respond with JSON only: {\"category\": \"<category>\", \"confidence\": <0-100>}.\n\nComplaint: %s",
		strings.Join(models.IssueCategories, ", "), text)

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return models.CategoryUncategorized, 0.0, fmt.Errorf("openai classification: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.CategoryUncategorized, 0.0, fmt.Errorf("openai classification: no choices returned")
	}

	var reply classifyReply
	if err := json.Unmarshal([]byte(extractJSON(resp.Choices[0].Message.Content)), &reply); err != nil {
		return models.CategoryUncategorized, 0.0, fmt.Errorf("openai classification: parse reply: %w", err)
	}
	if !validCategory(reply.Category) {
		log.Warnf("classifier returned unknown category %q, using %s", reply.Category, models.CategoryUncategorized)
		return models.CategoryUncategorized, 0.0, nil
	}
	return reply.Category, clampConfidence(reply.Confidence), nil
}

// Summarize asks the model for a one-line summary. The frequency penalty
// stands in for a no-repeat n-gram constraint to suppress looping
// generation; the caller clips the result to its length limit.
func (p *OpenAIProvider) Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	if p.client == nil {
		return "", models.ErrProviderDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"Summarize the user's civic complaint in one sentence of %d to %d characters. Do not repeat phrases.",
					minLength, maxLength),
			},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		FrequencyPenalty: 1.0,
	})
	if err != nil {
		return "", fmt.Errorf("openai summarization: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai summarization: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Describe generates a short factual description for an issue category.
func (p *OpenAIProvider) Describe(ctx context.Context, category string) (string, error) {
	if p.client == nil {
		return "", models.ErrProviderDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Describe a civic issue related to: %s. Keep it short and factual.", category),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai description: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai description: no choices returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// extractJSON strips markdown code fences chat models like to wrap JSON in.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func validCategory(category string) bool {
	for _, c := range models.IssueCategories {
		if c == category {
			return true
		}
	}
	return false
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

var (
	_ TextClassifier        = (*OpenAIProvider)(nil)
	_ AbstractiveSummarizer = (*OpenAIProvider)(nil)
	_ Describer             = (*OpenAIProvider)(nil)
)
