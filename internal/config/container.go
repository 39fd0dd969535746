package config

import (
	"context"
	"io"
	"os"
	"strings"

	"mcq-generator/internal/domain"
	"mcq-generator/internal/infra/fitz"
	"mcq-generator/internal/infra/gemini"
	"mcq-generator/internal/infra/supabase"
	"mcq-generator/internal/infra/tesseract"
	"mcq-generator/internal/repository"
	"mcq-generator/internal/service"
	"mcq-generator/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient
	AuthService    domain.AuthService
	Extractor      domain.Extractor
	Generator      domain.QuestionGenerator
	SessionStore   domain.SessionStore
	MCQService     domain.MCQService
}

// Option customizes container construction
type Option func(*options)

type options struct {
	logWriter io.Writer
}

// WithLogWriter sends log output to w instead of stdout
func WithLogWriter(w io.Writer) Option {
	return func(o *options) {
		o.logWriter = w
	}
}

// NewContainer creates a new dependency injection container. Missing Gemini
// credentials are not fatal: extraction still works and generation reports
// the configuration error.
func NewContainer(ctx context.Context, opts ...Option) (*Container, error) {
	o := options{logWriter: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	config := NewConfig()
	appLogger := logger.NewLoggerWithWriter(o.logWriter, config.GetLogLevel(), config.GetLogFormat())

	// Extraction pipeline
	recognizer := tesseract.NewRecognizer(ocrLanguages(config.GetOCRLanguage())...)
	extractor := service.NewDispatcher(
		service.NewPDFExtractor(fitz.NewOpener(), recognizer, appLogger,
			service.WithDPI(config.GetPDFDPI()),
			service.WithOCRWorkers(config.GetOCRWorkers()),
		),
		service.NewDOCXExtractor(appLogger),
		service.NewImageExtractor(recognizer, appLogger),
		appLogger,
	)

	// Question generation
	var generator domain.QuestionGenerator
	client, err := gemini.NewClient(ctx, config.GetGeminiAPIKey(), config.GetGoogleCloudProject(), config.GetGoogleCloudLocation())
	if err != nil {
		appLogger.Warn("Question generation unavailable", "error", err)
		generator = gemini.Unavailable{Err: err}
	} else {
		generator = gemini.NewGenerator(client, config.GetGeminiModel(), appLogger)
	}

	// Session storage and auth
	c := &Container{
		Config:    config,
		Logger:    appLogger,
		Extractor: extractor,
		Generator: generator,
	}
	if supabase.Enabled(config) {
		supabaseClient := supabase.NewClient(config, appLogger)
		if err := supabaseClient.Initialize(); err != nil {
			return nil, err
		}
		c.SupabaseClient = supabaseClient
		c.AuthService = service.NewAuthService(supabaseClient, appLogger)
		c.SessionStore = repository.NewSupabaseSessionStore(supabaseClient, appLogger)
	} else {
		appLogger.Info("Supabase not configured, using in-memory sessions keyed by header")
		c.SessionStore = repository.NewMemorySessionStore()
	}

	c.MCQService = service.NewMCQService(
		extractor,
		generator,
		c.SessionStore,
		appLogger,
		config.GetUploadPath(),
		config.GetMaxFileSize(),
	)
	return c, nil
}

func ocrLanguages(value string) []string {
	var langs []string
	for _, lang := range strings.Split(value, "+") {
		if lang = strings.TrimSpace(lang); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}
