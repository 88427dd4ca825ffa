package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"civiclens/internal/config"
	"civiclens/internal/services"
	"civiclens/internal/severity"
	"civiclens/internal/summarize"
	"civiclens/internal/urgency"
)

// App wires configuration, collaborator clients and the scoring services
// together. Every collaborator handle is constructed exactly once, here,
// at startup; the handlers and commands only ever see the assembled
// services.
type App struct {
	Config *config.Config

	TextClassifier  services.TextClassifier
	ImageClassifier services.ImageClassifier
	Describer       services.Describer

	AnalysisService *services.AnalysisService
	VisionService   *services.VisionService

	geminiProvider *services.GeminiProvider
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	app.initTextProviders()
	if err := app.initImageProvider(); err != nil {
		return nil, err
	}
	app.initServices()

	log.Println("Application initialization complete.")
	return app, nil
}

func (a *App) initTextProviders() {
	cfg := a.Config
	// A keyless provider disables itself; the orchestrators then fall back
	// to their deterministic paths, same as with the noop collaborators.
	provider := services.NewOpenAIProvider(cfg.Providers.OpenAIAPIKey, cfg.Providers.OpenAIModel, a.providerTimeout())
	a.TextClassifier = provider
	a.Describer = provider
}

func (a *App) initImageProvider() error {
	cfg := a.Config
	provider, err := services.NewGeminiProvider(
		context.Background(),
		cfg.Providers.GeminiAPIKey,
		cfg.Providers.GeminiModel,
		a.providerTimeout(),
	)
	if err != nil {
		return err
	}
	a.geminiProvider = provider
	a.ImageClassifier = provider
	return nil
}

func (a *App) initServices() {
	abstractive, _ := a.TextClassifier.(services.AbstractiveSummarizer)
	summarizer := summarize.New(abstractive)
	detector := urgency.NewDetector()
	estimator := severity.NewEstimator()

	a.AnalysisService = services.NewAnalysisService(a.TextClassifier, summarizer, detector)
	a.VisionService = services.NewVisionService(a.ImageClassifier, a.Describer, estimator)
}

func (a *App) providerTimeout() time.Duration {
	return time.Duration(a.Config.Providers.TimeoutSeconds) * time.Second
}

// Close releases collaborator clients.
func (a *App) Close() {
	if a.geminiProvider != nil {
		if err := a.geminiProvider.Close(); err != nil {
			log.Warnf("error closing Gemini provider: %v", err)
		}
	}
}
