package models

// Issue categories the text classifier is allowed to pick from. Upstream
// classifiers are imprecise, so consumers match these as substrings rather
// than exact values.
var IssueCategories = []string{
	"Pothole",
	"Garbage",
	"Streetlight",
	"Water Leakage",
	"Traffic Congestion",
	"Broken Pole",
	"Drainage Issue",
	"Uncategorized",
}

// CategoryUncategorized is the default category when classification fails
// or produces nothing usable.
const CategoryUncategorized = "Uncategorized"

// Classification is the (category, confidence) pair produced by a text or
// image classifier. Confidence is on a 0-100 scale.
type Classification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Urgency is the detector output: a 1-5 level, its fixed label and the
// taxonomy keywords that matched, in first-match order.
type Urgency struct {
	Level    int      `json:"level"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
}

// AnalysisResult aggregates the full text analysis. Error carries the
// "text too short" annotation on the degenerate path and is omitted
// otherwise.
type AnalysisResult struct {
	Classification Classification `json:"classification"`
	Summary        string         `json:"summary"`
	Urgency        Urgency        `json:"urgency"`
	Error          string         `json:"error,omitempty"`
}

// ImageAnalysis is the /analyze response: classification, severity and a
// generated description for a reported issue image.
type ImageAnalysis struct {
	PredictedCategory    string  `json:"predicted_category"`
	ConfidencePercent    float64 `json:"confidence_percent"`
	GeneratedDescription string  `json:"generated_description"`
	SeverityScore        int     `json:"severity_score"`
	IsMiscategorized     bool    `json:"is_miscategorized"`
}
