package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState(t *testing.T) {
	state := NewState()
	assert.Equal(t, "en", state.LanguagePreference)
	assert.False(t, state.LanguageChangeDetected)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	t.Run("lazily creates default state", func(t *testing.T) {
		state, err := store.Get(ctx, "conv-1")
		require.NoError(t, err)
		assert.Equal(t, "en", state.LanguagePreference)
	})

	t.Run("round trips saved state", func(t *testing.T) {
		state, err := store.Get(ctx, "conv-2")
		require.NoError(t, err)
		state.LanguagePreference = "ko"
		state.UserQuestion = "질문"
		require.NoError(t, store.Save(ctx, "conv-2", state))

		loaded, err := store.Get(ctx, "conv-2")
		require.NoError(t, err)
		assert.Equal(t, "ko", loaded.LanguagePreference)
		assert.Equal(t, "질문", loaded.UserQuestion)
	})

	t.Run("conversations are isolated", func(t *testing.T) {
		state, err := store.Get(ctx, "conv-3")
		require.NoError(t, err)
		assert.Equal(t, "en", state.LanguagePreference)
	})
}
