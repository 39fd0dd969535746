package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mcq-generator/internal/domain"

	"github.com/google/uuid"
)

// NoMCQsMessage is exported instead of questions when a session has none
const NoMCQsMessage = "No MCQs available to download."

// MCQService runs one upload through extraction and question generation and
// keeps the last successful set per session.
type MCQService struct {
	extractor   domain.Extractor
	generator   domain.QuestionGenerator
	store       domain.SessionStore
	logger      domain.Logger
	uploadDir   string
	maxFileSize int64
	now         func() time.Time
}

// NewMCQService creates a new MCQ service. uploadDir may be empty to use the
// OS temp directory.
func NewMCQService(
	extractor domain.Extractor,
	generator domain.QuestionGenerator,
	store domain.SessionStore,
	logger domain.Logger,
	uploadDir string,
	maxFileSize int64,
) *MCQService {
	return &MCQService{
		extractor:   extractor,
		generator:   generator,
		store:       store,
		logger:      logger,
		uploadDir:   uploadDir,
		maxFileSize: maxFileSize,
		now:         time.Now,
	}
}

// Process stores content in a temporary file, extracts its text and
// generates questions from it. The temporary file is removed on every path.
// A generator failure is not an error: the result carries the readable
// failure text and Generated is false.
func (s *MCQService) Process(ctx context.Context, sessionID, originalName string, content io.Reader) (*domain.ProcessResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, &domain.ValidationError{Field: "session_id", Message: "session ID is required"}
	}

	originalName = sanitizeFilename(originalName)
	format, ok := domain.FormatFromPath(originalName)
	if !ok {
		s.logger.Warn("Rejected upload with unsupported type", "session_id", sessionID, "name", originalName)
		return nil, &domain.UnsupportedTypeError{Ext: filepath.Ext(originalName)}
	}

	path, cleanup, err := s.saveUpload(originalName, content)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		s.logger.Warn("Extraction produced no text", "session_id", sessionID, "name", originalName, "reason", err)
		return nil, err
	}

	set := &domain.MCQSet{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		SourceName: originalName,
		Format:     format,
		CharCount:  len([]rune(text)),
		CreatedAt:  s.now().UTC(),
	}

	questions, err := s.generator.Generate(ctx, text)
	if err != nil {
		s.logger.Error("Question generation failed", err, "session_id", sessionID)
		set.Questions = fmt.Sprintf("Error generating MCQs: %v", err)
		return &domain.ProcessResult{
			Set:       set,
			Generated: false,
			Chunks:    SplitMessage(set.Questions, MaxMessageChars),
		}, nil
	}

	set.Questions = questions
	s.logger.Info("Generated MCQs", "session_id", sessionID, "name", originalName, "chars", len([]rune(questions)))

	if err := s.store.Save(ctx, set); err != nil {
		return nil, fmt.Errorf("failed to store mcq set: %w", err)
	}

	return &domain.ProcessResult{
		Set:       set,
		Generated: true,
		Chunks:    SplitMessage(questions, MaxMessageChars),
	}, nil
}

// Latest returns the last generated set of a session
func (s *MCQService) Latest(ctx context.Context, sessionID string) (*domain.MCQSet, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, &domain.ValidationError{Field: "session_id", Message: "session ID is required"}
	}
	return s.store.Latest(ctx, sessionID)
}

// Export returns the text written to the download file for a session
func (s *MCQService) Export(ctx context.Context, sessionID string) (string, error) {
	set, err := s.Latest(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return NoMCQsMessage, nil
	}
	if err != nil {
		return "", err
	}
	return set.Questions, nil
}

// EndSession evicts the session's stored set
func (s *MCQService) EndSession(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return &domain.ValidationError{Field: "session_id", Message: "session ID is required"}
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info("Session ended", "session_id", sessionID)
	return nil
}

// saveUpload copies content into a temp file keeping the original extension,
// so the dispatcher can route on it.
func (s *MCQService) saveUpload(originalName string, content io.Reader) (string, func(), error) {
	f, err := os.CreateTemp(s.uploadDir, "upload-*"+strings.ToLower(filepath.Ext(originalName)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Failed to remove temp file", "path", path, "error", err)
		}
	}

	src := content
	if s.maxFileSize > 0 {
		src = io.LimitReader(content, s.maxFileSize+1)
	}
	n, err := io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if s.maxFileSize > 0 && n > s.maxFileSize {
		cleanup()
		return "", nil, &domain.ValidationError{Field: "file", Message: fmt.Sprintf("file too large, maximum size is %d bytes", s.maxFileSize)}
	}
	if n == 0 {
		cleanup()
		return "", nil, &domain.ValidationError{Field: "file", Message: "file is empty"}
	}
	return path, cleanup, nil
}

// sanitizeFilename strips any path components from an uploaded name
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(filepath.Base(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "document"
	}
	return name
}
