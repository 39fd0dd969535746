package domain

import (
	"context"
	"image"
	"io"
	"time"
)

// Extractor converts one source file into plain text. A nil error means the
// returned text is non-empty after trimming and already truncated.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Recognizer runs text recognition over a single preprocessed image.
// Recognizing nothing is ("", nil); engine failures are returned as errors.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// PDFOpener opens a PDF for page-level access
type PDFOpener interface {
	Open(path string) (PDFDocument, error)
}

// PDFDocument exposes the embedded text layer and a rasterizer per page.
// Implementations must allow concurrent calls.
type PDFDocument interface {
	NumPage() int
	Text(page int) (string, error)
	Image(page int, dpi float64) (image.Image, error)
	Close() error
}

// QuestionGenerator turns study notes into formatted multiple-choice questions
type QuestionGenerator interface {
	Generate(ctx context.Context, notes string) (string, error)
}

// SessionStore keeps the last generated set per session
type SessionStore interface {
	Save(ctx context.Context, set *MCQSet) error
	Latest(ctx context.Context, sessionID string) (*MCQSet, error)
	Delete(ctx context.Context, sessionID string) error
}

// MCQService is the orchestration boundary used by transports
type MCQService interface {
	Process(ctx context.Context, sessionID, originalName string, content io.Reader) (*ProcessResult, error)
	Latest(ctx context.Context, sessionID string) (*MCQSet, error)
	Export(ctx context.Context, sessionID string) (string, error)
	EndSession(ctx context.Context, sessionID string) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetGoogleCloudProject() string
	GetGoogleCloudLocation() string
	GetOCRLanguage() string
	GetOCRWorkers() int
	GetPDFDPI() float64
	GetProcessTimeout() time.Duration
	GetUploadRatePerMinute() float64
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetCORSAllowedOrigins() []string
}
