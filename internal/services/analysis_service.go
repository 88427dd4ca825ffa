package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"civiclens/internal/models"
	"civiclens/internal/summarize"
	"civiclens/internal/urgency"
)

// Text shorter than this carries nothing to analyze.
const minAnalyzableLen = 3

// AnalysisService composes classification, summarization and urgency
// detection into one result. Each sub-result degrades independently:
// a dead classifier never blocks urgency detection and vice versa.
type AnalysisService struct {
	classifier TextClassifier
	summarizer *summarize.Extractive
	detector   *urgency.Detector
}

func NewAnalysisService(classifier TextClassifier, summarizer *summarize.Extractive, detector *urgency.Detector) *AnalysisService {
	return &AnalysisService{
		classifier: classifier,
		summarizer: summarizer,
		detector:   detector,
	}
}

// Analyze runs the full text pipeline. Degenerate inputs short-circuit to
// a fixed sentinel result with an error annotation and never touch the
// collaborators.
func (s *AnalysisService) Analyze(ctx context.Context, text string) models.AnalysisResult {
	if len(strings.TrimSpace(text)) < minAnalyzableLen {
		return models.AnalysisResult{
			Classification: models.Classification{Category: models.CategoryUncategorized, Confidence: 0.0},
			Summary:        head(text, 100),
			Urgency:        models.Urgency{Level: 1, Label: urgency.Label(1), Keywords: []string{}},
			Error:          "Text too short for analysis",
		}
	}

	return models.AnalysisResult{
		Classification: s.Classify(ctx, text),
		Summary:        s.Summarize(ctx, text, 0, 0),
		Urgency:        s.DetectUrgency(text),
	}
}

// Classify wraps the text classifier and recovers failures with the
// documented (Uncategorized, 0.0) default.
func (s *AnalysisService) Classify(ctx context.Context, text string) models.Classification {
	if len(strings.TrimSpace(text)) < minAnalyzableLen {
		return models.Classification{Category: models.CategoryUncategorized, Confidence: 0.0}
	}
	category, confidence, err := s.classifier.ClassifyText(ctx, text)
	if err != nil {
		log.Warnf("text classification failed, using default: %v", err)
		return models.Classification{Category: models.CategoryUncategorized, Confidence: 0.0}
	}
	return models.Classification{Category: category, Confidence: confidence}
}

// Summarize condenses the text. Non-positive lengths take the summarizer
// defaults.
func (s *AnalysisService) Summarize(ctx context.Context, text string, maxLength, minLength int) string {
	return s.summarizer.Summarize(ctx, text, maxLength, minLength)
}

// DetectUrgency scans the text against the keyword taxonomy.
func (s *AnalysisService) DetectUrgency(text string) models.Urgency {
	level, label, keywords := s.detector.Detect(text)
	return models.Urgency{Level: level, Label: label, Keywords: keywords}
}

// head returns the first n characters of s.
func head(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
