package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewRouter_Health(t *testing.T) {
	router := newTestRouter(newMockMCQService(), 1024, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"status":"ok","service":"mcq-generator"}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	mcqHandler := NewMCQHandler(newMockMCQService(), NewMockHandlerLogger(), 1024, 0)
	sessions := NewSessionMiddleware(nil, NewMockHandlerLogger())
	router := NewRouter(mcqHandler, sessions.Middleware, nil, []string{"https://app.example"})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/mcqs", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", SessionHeader)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("expected allowed origin https://app.example, got %q", got)
	}
}

func TestNewRouter_UploadLimiterApplied(t *testing.T) {
	mcqHandler := NewMCQHandler(newMockMCQService(), NewMockHandlerLogger(), 1024, 0)
	sessions := NewSessionMiddleware(nil, NewMockHandlerLogger())
	blocked := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	router := NewRouter(mcqHandler, sessions.Middleware, blocked, []string{"*"})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, uploadRequest(t, "notes.pdf", []byte("data")))

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rr.Code)
	}
}
