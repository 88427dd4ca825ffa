package services

import (
	"context"

	"civiclens/internal/models"
)

// Noop collaborators stand in when no model is configured, returning the
// documented defaults so the deterministic paths stay authoritative.

type NoopTextClassifier struct{}

func (s *NoopTextClassifier) ClassifyText(ctx context.Context, text string) (string, float64, error) {
	return models.CategoryUncategorized, 0.0, nil
}

type NoopImageClassifier struct{}

func (s *NoopImageClassifier) ClassifyImage(ctx context.Context, imageData []byte) (string, float64) {
	return models.CategoryUncategorized, 0.0
}

type NoopSummarizer struct{}

func (s *NoopSummarizer) Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error) {
	return "", nil
}

type NoopDescriber struct{}

func (s *NoopDescriber) Describe(ctx context.Context, category string) (string, error) {
	return "", nil
}

func NewNoopTextClassifier() TextClassifier {
	return &NoopTextClassifier{}
}

func NewNoopImageClassifier() ImageClassifier {
	return &NoopImageClassifier{}
}

func NewNoopSummarizer() AbstractiveSummarizer {
	return &NoopSummarizer{}
}

func NewNoopDescriber() Describer {
	return &NoopDescriber{}
}
