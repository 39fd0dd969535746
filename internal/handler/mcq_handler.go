package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mcq-generator/internal/domain"
	apperrors "mcq-generator/pkg/errors"
)

// multipartMemory is the part of an upload kept in memory, the rest spills
// to disk inside ParseMultipartForm.
const multipartMemory = 10 << 20

// mcqResponse is returned for a processed upload
type mcqResponse struct {
	ID         string        `json:"id,omitempty"`
	SourceName string        `json:"source_name"`
	Format     domain.Format `json:"format"`
	CharCount  int           `json:"char_count"`
	Questions  string        `json:"questions"`
	Chunks     []string      `json:"chunks"`
	Generated  bool          `json:"generated"`
}

// MCQHandler exposes upload, download and session end over HTTP
type MCQHandler struct {
	mcqService  domain.MCQService
	logger      domain.Logger
	maxFileSize int64
	timeout     time.Duration
}

// NewMCQHandler creates a new MCQ handler. A zero timeout leaves requests unbounded.
func NewMCQHandler(mcqService domain.MCQService, logger domain.Logger, maxFileSize int64, timeout time.Duration) *MCQHandler {
	return &MCQHandler{
		mcqService:  mcqService,
		logger:      logger,
		maxFileSize: maxFileSize,
		timeout:     timeout,
	}
}

// Upload handles POST /mcqs with a multipart "file" field
func (h *MCQHandler) Upload(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Session not found in context")
		return
	}

	if h.maxFileSize > 0 {
		// Leave room for the multipart envelope around the file itself.
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartMemory)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %d bytes.", h.maxFileSize))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %d bytes.", h.maxFileSize))
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	h.logger.Info("Processing upload", "session_id", sessionID, "name", header.Filename, "size", header.Size)
	result, err := h.mcqService.Process(ctx, sessionID, header.Filename, file)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusGatewayTimeout, "Processing took too long. Please try a smaller file.")
			return
		}
		h.writeServiceError(w, "Upload processing failed", err)
		return
	}

	set := result.Set
	resp := mcqResponse{
		SourceName: set.SourceName,
		Format:     set.Format,
		CharCount:  set.CharCount,
		Questions:  set.Questions,
		Chunks:     result.Chunks,
		Generated:  result.Generated,
	}
	if result.Generated {
		resp.ID = set.ID
		writeJSON(w, http.StatusCreated, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Latest handles GET /mcqs/latest
func (h *MCQHandler) Latest(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Session not found in context")
		return
	}

	set, err := h.mcqService.Latest(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, "Failed to load latest MCQs", err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// Download handles GET /mcqs/latest/download and always answers with a text file
func (h *MCQHandler) Download(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Session not found in context")
		return
	}

	text, err := h.mcqService.Export(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, "Failed to export MCQs", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="mcqs.txt"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// EndSession handles DELETE /session
func (h *MCQHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Session not found in context")
		return
	}

	if err := h.mcqService.EndSession(r.Context(), sessionID); err != nil {
		h.writeServiceError(w, "Failed to end session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Session ended."})
}

func (h *MCQHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	appErr := apperrors.FromDomain(err)
	if apperrors.GetStatusCode(appErr) >= http.StatusInternalServerError {
		h.logger.Error(msg, err)
	} else {
		h.logger.Debug(msg, "error", err)
	}
	writeAppError(w, appErr)
}
