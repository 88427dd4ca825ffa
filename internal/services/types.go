package services

import (
	"context"
)

// Collaborator contracts for the external model boundary. The scoring core
// only ever sees these shapes; every implementation must degrade to its
// documented default instead of letting failures escape the orchestrators.

// TextClassifier assigns an issue category to complaint text with a
// confidence on the 0-100 scale.
type TextClassifier interface {
	ClassifyText(ctx context.Context, text string) (category string, confidence float64, err error)
}

// ImageClassifier labels a reported issue image with a category and a raw
// [0,1] confidence. On total failure it returns ("Uncategorized", 0.0)
// rather than an error; the image path must keep working without a model.
type ImageClassifier interface {
	ClassifyImage(ctx context.Context, imageData []byte) (category string, confidence float64)
}

// AbstractiveSummarizer generates a condensed summary. The extractive
// ladder treats it as an optional accelerator, never the authoritative
// path.
type AbstractiveSummarizer interface {
	Summarize(ctx context.Context, text string, maxLength, minLength int) (string, error)
}

// Describer produces a short description for an issue category.
type Describer interface {
	Describe(ctx context.Context, category string) (string, error)
}
