package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"mcq-generator/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort          string
	UploadPath          string
	MaxFileSize         int64
	LogLevel            string
	LogFormat           string
	GeminiAPIKey        string
	GeminiModel         string
	GoogleCloudProject  string
	GoogleCloudLocation string
	OCRLanguage         string
	OCRWorkers          int
	PDFDPI              float64
	ProcessTimeout      time.Duration
	UploadRatePerMinute float64
	SupabaseURL         string
	SupabaseKey         string
	CORSAllowedOrigins  []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:          getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:          getEnvOrDefault("UPLOAD_PATH", os.TempDir()),
		MaxFileSize:         getEnvInt64OrDefault("MAX_FILE_SIZE", 20*1024*1024), // 20MB default
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "text"),
		GeminiAPIKey:        getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:         getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		GoogleCloudProject:  getEnvOrDefault("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation: getEnvOrDefault("GOOGLE_CLOUD_LOCATION", "us-central1"),
		OCRLanguage:         getEnvOrDefault("OCR_LANGUAGE", "eng"),
		OCRWorkers:          getEnvIntOrDefault("OCR_WORKERS", 2),
		PDFDPI:              getEnvFloatOrDefault("PDF_DPI", 300),
		ProcessTimeout:      getEnvDurationOrDefault("PROCESS_TIMEOUT", 5*time.Minute),
		UploadRatePerMinute: getEnvFloatOrDefault("UPLOAD_RATE_PER_MINUTE", 6),
		SupabaseURL:         getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:         getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		CORSAllowedOrigins:  getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the directory temporary uploads are written to
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns "json" or "text"
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

func (c *AppConfig) GetGeminiAPIKey() string {
	return c.GeminiAPIKey
}

func (c *AppConfig) GetGeminiModel() string {
	return c.GeminiModel
}

func (c *AppConfig) GetGoogleCloudProject() string {
	return c.GoogleCloudProject
}

func (c *AppConfig) GetGoogleCloudLocation() string {
	return c.GoogleCloudLocation
}

// GetOCRLanguage returns the Tesseract language list, e.g. "eng" or "eng+deu"
func (c *AppConfig) GetOCRLanguage() string {
	return c.OCRLanguage
}

// GetOCRWorkers returns how many PDF pages are OCRed concurrently
func (c *AppConfig) GetOCRWorkers() int {
	return c.OCRWorkers
}

// GetPDFDPI returns the rasterization resolution for the OCR fallback
func (c *AppConfig) GetPDFDPI() float64 {
	return c.PDFDPI
}

// GetProcessTimeout bounds one upload from extraction to generation
func (c *AppConfig) GetProcessTimeout() time.Duration {
	return c.ProcessTimeout
}

// GetUploadRatePerMinute returns the per-session upload rate, 0 disables limiting
func (c *AppConfig) GetUploadRatePerMinute() float64 {
	return c.UploadRatePerMinute
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

func (c *AppConfig) GetCORSAllowedOrigins() []string {
	return c.CORSAllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil && floatValue >= 0 {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
