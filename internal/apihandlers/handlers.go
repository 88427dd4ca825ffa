package apihandlers

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"civiclens/internal/app"
	"civiclens/internal/models"
	"civiclens/internal/util"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(app *app.App) *APIHandler {
	return &APIHandler{App: app}
}

// RegisterRoutes mounts the analysis endpoints on the router.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/analyze", h.AnalyzeHandler)
	router.POST("/analyze-text", h.AnalyzeTextHandler)
	router.POST("/classify-text", h.ClassifyTextHandler)
	router.POST("/summarize-text", h.SummarizeTextHandler)
	router.POST("/detect-urgency", h.DetectUrgencyHandler)
	router.GET("/health", h.HealthHandler)
}

// AnalyzeRequest is the /analyze body: a base64-encoded issue image.
type AnalyzeRequest struct {
	Image string `json:"image"`
}

// TextRequest is the shared body shape of the text endpoints.
type TextRequest struct {
	Text string `json:"text"`
}

// SummarizeRequest adds optional length bounds to the text body.
type SummarizeRequest struct {
	Text      string `json:"text"`
	MaxLength int    `json:"max_length"`
	MinLength int    `json:"min_length"`
}

// AnalyzeHandler runs the full image pipeline: classification, severity
// scoring and description generation.
func (h *APIHandler) AnalyzeHandler(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" {
		BadRequest(c, "Image required")
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		BadRequest(c, "Invalid base64 image data: "+err.Error())
		return
	}

	result, err := h.App.VisionService.AnalyzeImage(c.Request.Context(), imageData)
	if err != nil {
		if errors.Is(err, models.ErrImageDecode) {
			log.Warnf("AnalyzeHandler: %v", err)
		}
		Internal(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeTextHandler runs classification, summarization and urgency
// detection over a complaint text.
func (h *APIHandler) AnalyzeTextHandler(c *gin.Context) {
	text, ok := parseTextRequest(c)
	if !ok {
		return
	}

	result := h.App.AnalysisService.Analyze(c.Request.Context(), text)
	c.JSON(http.StatusOK, result)
}

// ClassifyTextHandler classifies a complaint into issue categories.
func (h *APIHandler) ClassifyTextHandler(c *gin.Context) {
	text, ok := parseTextRequest(c)
	if !ok {
		return
	}

	classification := h.App.AnalysisService.Classify(c.Request.Context(), text)
	c.JSON(http.StatusOK, classification)
}

// SummarizeTextHandler condenses a complaint into a one-liner.
func (h *APIHandler) SummarizeTextHandler(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Text required")
		return
	}
	text := util.NormalizeText(req.Text)
	if text == "" {
		BadRequest(c, "Text required")
		return
	}

	maxLength, minLength := req.MaxLength, req.MinLength
	if maxLength <= 0 {
		maxLength = h.App.Config.Summarization.MaxLength
	}
	if minLength <= 0 {
		minLength = h.App.Config.Summarization.MinLength
	}

	summary := h.App.AnalysisService.Summarize(c.Request.Context(), text, maxLength, minLength)
	c.JSON(http.StatusOK, gin.H{
		"summary":         summary,
		"original_length": len(text),
		"summary_length":  len(summary),
	})
}

// DetectUrgencyHandler scans a complaint for urgency keywords.
func (h *APIHandler) DetectUrgencyHandler(c *gin.Context) {
	text, ok := parseTextRequest(c)
	if !ok {
		return
	}

	urg := h.App.AnalysisService.DetectUrgency(text)
	c.JSON(http.StatusOK, gin.H{
		"urgency_level":  urg.Level,
		"urgency_label":  urg.Label,
		"keywords_found": urg.Keywords,
	})
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "AI Service is running", "version": "1.0"})
}

// parseTextRequest binds the shared text body and rejects empty input.
func parseTextRequest(c *gin.Context) (string, bool) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Text required")
		return "", false
	}
	text := util.NormalizeText(req.Text)
	if text == "" {
		BadRequest(c, "Text required")
		return "", false
	}
	return text, true
}
