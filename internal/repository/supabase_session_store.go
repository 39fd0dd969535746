package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mcq-generator/internal/domain"

	"github.com/supabase-community/supabase-go"
)

const mcqSessionsTable = "mcq_sessions"

// SupabaseSessionStore persists the last MCQ set per session in the
// mcq_sessions table, keyed by session_id.
type SupabaseSessionStore struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseSessionStore creates a new Supabase session store
func NewSupabaseSessionStore(supabaseClient domain.SupabaseClient, logger domain.Logger) *SupabaseSessionStore {
	return &SupabaseSessionStore{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// clientFor returns a client scoped to the caller's token for RLS policies
func (r *SupabaseSessionStore) clientFor(ctx context.Context) (*supabase.Client, error) {
	token, ok := domain.AccessTokenFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: access token missing from context", domain.ErrInvalidToken)
	}
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}
	return client, nil
}

type mcqSessionRow struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	SourceName string    `json:"source_name"`
	Format     string    `json:"format"`
	CharCount  int       `json:"char_count"`
	Questions  string    `json:"questions"`
	CreatedAt  time.Time `json:"created_at"`
}

// Save upserts the session's last set
func (r *SupabaseSessionStore) Save(ctx context.Context, set *domain.MCQSet) error {
	if set == nil || set.SessionID == "" {
		return &domain.ValidationError{Field: "session_id", Message: "session ID is required"}
	}
	client, err := r.clientFor(ctx)
	if err != nil {
		return err
	}

	data := map[string]interface{}{
		"id":          set.ID,
		"session_id":  set.SessionID,
		"source_name": set.SourceName,
		"format":      string(set.Format),
		"char_count":  set.CharCount,
		"questions":   set.Questions,
		"created_at":  set.CreatedAt.Format(time.RFC3339),
	}

	// Upsert on session_id so only the last set survives.
	_, _, err = client.From(mcqSessionsTable).Insert(data, true, "session_id", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to save mcq set: %w", err)
	}
	r.logger.Debug("Saved mcq set", "session_id", set.SessionID, "id", set.ID)
	return nil
}

// Latest loads the session's last set
func (r *SupabaseSessionStore) Latest(ctx context.Context, sessionID string) (*domain.MCQSet, error) {
	client, err := r.clientFor(ctx)
	if err != nil {
		return nil, err
	}

	data, _, err := client.From(mcqSessionsTable).
		Select("*", "", false).
		Eq("session_id", sessionID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get mcq set: %w", err)
	}

	var rows []mcqSessionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	row := rows[0]
	return &domain.MCQSet{
		ID:         row.ID,
		SessionID:  row.SessionID,
		SourceName: row.SourceName,
		Format:     domain.Format(row.Format),
		CharCount:  row.CharCount,
		Questions:  row.Questions,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// Delete evicts the session's row
func (r *SupabaseSessionStore) Delete(ctx context.Context, sessionID string) error {
	client, err := r.clientFor(ctx)
	if err != nil {
		return err
	}

	_, _, err = client.From(mcqSessionsTable).Delete("", "").Eq("session_id", sessionID).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete mcq set: %w", err)
	}
	return nil
}
