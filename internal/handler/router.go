package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	mcqHandler *MCQHandler,
	sessionMiddleware func(http.Handler) http.Handler,
	uploadLimiter func(http.Handler) http.Handler,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint (no session required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"mcq-generator"}`))
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(sessionMiddleware)

	upload := http.Handler(http.HandlerFunc(mcqHandler.Upload))
	if uploadLimiter != nil {
		upload = uploadLimiter(upload)
	}
	api.Handle("/mcqs", upload).Methods("POST")
	api.HandleFunc("/mcqs/latest", mcqHandler.Latest).Methods("GET")
	api.HandleFunc("/mcqs/latest/download", mcqHandler.Download).Methods("GET")
	api.HandleFunc("/session", mcqHandler.EndSession).Methods("DELETE")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			SessionHeader,
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"Retry-After",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
