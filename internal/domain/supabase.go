package domain

import (
	"context"

	"github.com/supabase-community/supabase-go"
)

// SupabaseUser represents a user from Supabase Auth
type SupabaseUser struct {
	ID           string
	Email        string
	UserMetadata map[string]interface{}
	CreatedAt    string
	UpdatedAt    string
}

type SupabaseClient interface {
	Initialize() error
	ValidateToken(token string) (*SupabaseUser, error)

	DB() *supabase.Client
	GetClientWithToken(token string) (*supabase.Client, error)
}

type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
}

type accessTokenKey struct{}

// WithAccessToken returns a context carrying the caller's Supabase JWT.
// Repositories use it to run queries under the caller's RLS policies.
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessTokenFromContext returns the JWT stored by WithAccessToken
func AccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok && token != ""
}
