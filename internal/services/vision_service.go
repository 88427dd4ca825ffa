package services

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"civiclens/internal/models"
	"civiclens/internal/severity"
)

// Confidence below this marks the classification as likely wrong.
const miscategorizedBelow = 50.0

// VisionService runs the full image pipeline: classification, description
// and the deterministic severity score.
type VisionService struct {
	classifier ImageClassifier
	describer  Describer
	estimator  *severity.Estimator
}

func NewVisionService(classifier ImageClassifier, describer Describer, estimator *severity.Estimator) *VisionService {
	return &VisionService{
		classifier: classifier,
		describer:  describer,
		estimator:  estimator,
	}
}

// AnalyzeImage classifies the image, scores its severity and generates a
// description. Undecodable image data is a hard failure; a wrong severity
// for unreadable input would be worse than an explicit error.
func (s *VisionService) AnalyzeImage(ctx context.Context, imageData []byte) (*models.ImageAnalysis, error) {
	px, err := severity.Decode(imageData)
	if err != nil {
		return nil, err
	}

	category, rawConfidence := s.classifier.ClassifyImage(ctx, imageData)
	confidence := severity.ScaleConfidence(rawConfidence)

	return &models.ImageAnalysis{
		PredictedCategory:    category,
		ConfidencePercent:    confidence,
		GeneratedDescription: s.Describe(ctx, category),
		SeverityScore:        s.estimator.Estimate(category, confidence, px),
		IsMiscategorized:     confidence < miscategorizedBelow,
	}, nil
}

// Describe wraps the description collaborator. Failure or empty output
// falls back to the fixed template so the response stays schema-valid.
func (s *VisionService) Describe(ctx context.Context, category string) string {
	description, err := s.describer.Describe(ctx, category)
	if err != nil {
		log.Warnf("description generation failed, using template: %v", err)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Sprintf("A %s issue has been reported and requires immediate attention.", category)
	}
	return description
}
