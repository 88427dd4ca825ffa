package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"civiclens/internal/models"
)

// GeminiProvider implements ImageClassifier using the Gemini vision API.
// Model labels are free-form, so the raw label is folded onto the closed
// category set through a keyword map before it leaves the provider.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider creates the provider. Without an API key the provider
// is disabled and classifies everything as Uncategorized with zero
// confidence, which keeps the image path available.
func NewGeminiProvider(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiProvider, error) {
	if apiKey == "" {
		log.Warn("Gemini API key not provided. Image classifier will be disabled.")
		return &GeminiProvider{client: nil}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	log.Infof("Gemini provider initialized with model %s", model)
	return &GeminiProvider{client: client, model: model, timeout: timeout}, nil
}

// labelCategories folds free-form vision labels onto the app's categories.
// First keyword hit wins, scan order is fixed.
var labelCategories = []struct {
	category string
	keywords []string
}{
	{"Pothole", []string{
		"pothole", "road", "asphalt", "pavement", "street", "crack", "damage",
		"gravel", "cobblestone", "road surface", "tarmac", "highway", "pit",
	}},
	{"Streetlight", []string{
		"street light", "streetlight", "lamp", "lantern", "light", "pole",
		"lamppost", "traffic light", "spotlight", "torch", "electric light",
	}},
	{"Garbage", []string{
		"garbage", "trash", "waste", "litter", "bin", "dump", "rubbish",
		"refuse", "compost", "recycling", "dumpster", "bag", "pile", "heap",
	}},
	{"Water Leakage", []string{
		"water", "pipe", "flood", "leak", "puddle", "drain", "sewage",
		"wet", "moisture", "overflow", "stream", "flow", "tap", "valve",
	}},
}

type labelReply struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifyImage labels the image and maps the label to a category with a
// raw [0,1] confidence. Per the collaborator contract any failure degrades
// to ("Uncategorized", 0.0); errors are logged, never returned.
func (p *GeminiProvider) ClassifyImage(ctx context.Context, imageData []byte) (string, float64) {
	if p.client == nil {
		return models.CategoryUncategorized, 0.0
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	format := strings.TrimPrefix(http.DetectContentType(imageData), "image/")
	prompt := genai.Text(
		`Identify the most prominent object or scene in this image. ` +
			`Respond with JSON only: {"label": "<short lowercase label>", "score": <0.0-1.0>}`)

	resp, err := p.client.GenerativeModel(p.model).GenerateContent(ctx,
		genai.ImageData(format, imageData), prompt)
	if err != nil {
		log.Warnf("gemini image classification failed: %v", err)
		return models.CategoryUncategorized, 0.0
	}

	var reply labelReply
	if err := json.Unmarshal([]byte(extractJSON(responseText(resp))), &reply); err != nil {
		log.Warnf("gemini image classification: unparseable reply: %v", err)
		return models.CategoryUncategorized, 0.0
	}

	score := reply.Score
	if score < 0 || score > 1 {
		score = 0.0
	}
	return mapLabelToCategory(reply.Label), score
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

func mapLabelToCategory(label string) string {
	lower := strings.ToLower(label)
	for _, lc := range labelCategories {
		for _, kw := range lc.keywords {
			if strings.Contains(lower, kw) {
				return lc.category
			}
		}
	}
	return models.CategoryUncategorized
}

func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

var _ ImageClassifier = (*GeminiProvider)(nil)
