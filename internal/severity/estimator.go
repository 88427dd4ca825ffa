package severity

import (
	"math"
	"strings"
)

// Family is the normalized category family the estimator dispatches on.
// Deriving it once from the free-text label keeps the analyzer selection
// exhaustive while preserving substring-matching compatibility with
// imprecise upstream classifiers.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyPothole
	FamilyGarbage
	FamilyWater
	FamilyLight
)

// FamilyOf maps a free-text category label onto a family. Matching is
// case-insensitive substring in fixed priority order, so near-miss labels
// like "road pothole (deep)" still route correctly.
func FamilyOf(category string) Family {
	c := strings.ToLower(category)
	switch {
	case strings.Contains(c, "pothole"):
		return FamilyPothole
	case strings.Contains(c, "garbage") || strings.Contains(c, "waste"):
		return FamilyGarbage
	case strings.Contains(c, "water leakage") || strings.Contains(c, "flood"):
		return FamilyWater
	case strings.Contains(c, "streetlight") || strings.Contains(c, "light"):
		return FamilyLight
	default:
		return FamilyUnknown
	}
}

// Keyword groups for the no-image fallback. Broader than the analyzer
// routing on purpose: without pixels to look at, related infrastructure
// terms share a base tier.
var fallbackTiers = []struct {
	base  int
	words []string
}{
	{4, []string{"pothole", "water leakage", "flood", "dam", "pipe", "drain"}},
	{3, []string{"garbage", "waste", "trash", "rubbish"}},
	{2, []string{"streetlight", "light", "lamp"}},
}

const defaultBaseTier = 2

// Estimator turns a (category, confidence, pixels) triple into a 1-5
// severity score. Stateless and safe for concurrent use.
type Estimator struct{}

func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate computes the severity score. px may be nil when the caller has
// no image, in which case a coarse keyword fallback supplies the base
// tier. Decode failures must be handled by the caller before this point;
// nil here always means "no image supplied".
func (e *Estimator) Estimate(category string, confidencePercent float64, px *Pixels) int {
	base := defaultBaseTier

	if px != nil {
		switch FamilyOf(category) {
		case FamilyPothole:
			base = analyzePothole(px)
		case FamilyGarbage:
			base = analyzeGarbage(px)
		case FamilyWater:
			base = analyzeWater(px)
		case FamilyLight:
			base = analyzeLight(px)
		}
	} else {
		lower := strings.ToLower(category)
		for _, tier := range fallbackTiers {
			if containsAny(lower, tier.words) {
				base = tier.base
				break
			}
		}
	}

	return adjustForConfidence(base, confidencePercent)
}

// adjustForConfidence applies the confidence bump exactly once to the base
// tier: high confidence raises it, low confidence lowers it, always
// clamped to [1,5].
func adjustForConfidence(base int, confidencePercent float64) int {
	switch {
	case confidencePercent >= 80:
		if base < 5 {
			base++
		}
	case confidencePercent < 50:
		if base > 1 {
			base--
		}
	}
	return base
}

// ScaleConfidence converts a raw [0,1] model probability to a percentage
// rounded to one decimal place.
func ScaleConfidence(raw float64) float64 {
	return math.Round(raw*1000) / 10
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
