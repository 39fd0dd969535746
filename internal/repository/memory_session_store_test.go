package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"mcq-generator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore_SaveLatestDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	_, err := store.Latest(ctx, "user-1")
	require.True(t, errors.Is(err, domain.ErrSessionNotFound))

	first := &domain.MCQSet{ID: "a", SessionID: "user-1", Questions: "Q1", CreatedAt: time.Now()}
	second := &domain.MCQSet{ID: "b", SessionID: "user-1", Questions: "Q2", CreatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Latest(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
	assert.Equal(t, "Q2", got.Questions)
	assert.Equal(t, 1, store.Len())

	// Returned sets are copies.
	got.Questions = "mutated"
	again, err := store.Latest(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Q2", again.Questions)

	require.NoError(t, store.Delete(ctx, "user-1"))
	_, err = store.Latest(ctx, "user-1")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Delete(ctx, "never-seen"))
}

func TestMemorySessionStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	require.NoError(t, store.Save(ctx, &domain.MCQSet{SessionID: "a", Questions: "for a"}))
	require.NoError(t, store.Save(ctx, &domain.MCQSet{SessionID: "b", Questions: "for b"}))
	require.NoError(t, store.Delete(ctx, "a"))

	got, err := store.Latest(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "for b", got.Questions)
}

func TestMemorySessionStore_RejectsMissingSession(t *testing.T) {
	err := NewMemorySessionStore().Save(context.Background(), &domain.MCQSet{})
	var validationErr *domain.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestMemorySessionStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("user-%d", i%5)
			_ = store.Save(ctx, &domain.MCQSet{SessionID: id, Questions: "q"})
			_, _ = store.Latest(ctx, id)
			if i%7 == 0 {
				_ = store.Delete(ctx, id)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, store.Len(), 5)
}
