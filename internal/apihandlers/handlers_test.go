package apihandlers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civiclens/internal/apihandlers"
	"civiclens/internal/app"
	"civiclens/internal/config"
	"civiclens/internal/services"
	"civiclens/internal/severity"
	"civiclens/internal/summarize"
	"civiclens/internal/urgency"
)

// newTestRouter assembles a router over noop collaborators so the handler
// tests exercise only the deterministic pipeline.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	classifier := services.NewNoopTextClassifier()
	imageClassifier := services.NewNoopImageClassifier()
	describer := services.NewNoopDescriber()

	testApp := &app.App{
		Config:          &config.Config{},
		TextClassifier:  classifier,
		ImageClassifier: imageClassifier,
		Describer:       describer,
		AnalysisService: services.NewAnalysisService(classifier, summarize.New(nil), urgency.NewDetector()),
		VisionService:   services.NewVisionService(imageClassifier, describer, severity.NewEstimator()),
	}

	router := gin.New()
	apihandlers.NewAPIHandler(testApp).RegisterRoutes(router)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "AI Service is running", body["status"])
	assert.Equal(t, "1.0", body["version"])
}

func TestTextEndpoints_RejectEmptyText(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/analyze-text", "/classify-text", "/summarize-text", "/detect-urgency"} {
		t.Run(path, func(t *testing.T) {
			w := postJSON(t, router, path, gin.H{"text": "   "})
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Text required", decodeBody(t, w)["error"])
		})
	}
}

func TestDetectUrgencyHandler(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/detect-urgency", gin.H{"text": "Transformer sparking near the school, emergency!"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(5), body["urgency_level"])
	assert.Equal(t, "Critical", body["urgency_label"])
	assert.ElementsMatch(t, []any{"sparking", "emergency"}, body["keywords_found"])
}

func TestAnalyzeTextHandler(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/analyze-text", gin.H{"text": "Garbage has not been collected for a week."})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	classification := body["classification"].(map[string]any)
	assert.Equal(t, "Uncategorized", classification["category"])

	urg := body["urgency"].(map[string]any)
	assert.Equal(t, float64(3), urg["level"])

	assert.NotEmpty(t, body["summary"])
	assert.NotContains(t, body, "error")
}

func TestSummarizeTextHandler(t *testing.T) {
	router := newTestRouter()

	text := "Streetlight has been flickering for days."
	w := postJSON(t, router, "/summarize-text", gin.H{"text": text})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, text, body["summary"])
	assert.Equal(t, float64(len(text)), body["original_length"])
	assert.Equal(t, float64(len(text)), body["summary_length"])
}

func TestAnalyzeHandler_MissingImage(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/analyze", gin.H{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Image required", decodeBody(t, w)["error"])
}

func TestAnalyzeHandler_InvalidBase64(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/analyze", gin.H{"image": "@@not-base64@@"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "Invalid base64 image data")
}

func TestAnalyzeHandler_UndecodableImage(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/analyze", gin.H{
		"image": base64.StdEncoding.EncodeToString([]byte("plain text, not pixels")),
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAnalyzeHandler_ValidImage(t *testing.T) {
	router := newTestRouter()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{30, 30, 30, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	w := postJSON(t, router, "/analyze", gin.H{
		"image": base64.StdEncoding.EncodeToString(buf.Bytes()),
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Uncategorized", body["predicted_category"])
	assert.Equal(t, float64(0), body["confidence_percent"])
	assert.True(t, body["is_miscategorized"].(bool))
	severityScore := body["severity_score"].(float64)
	assert.GreaterOrEqual(t, severityScore, float64(1))
	assert.LessOrEqual(t, severityScore, float64(5))
	assert.NotEmpty(t, body["generated_description"])
}
