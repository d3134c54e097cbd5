package phrases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	store := NewStore(map[string]map[string]string{
		"es": {"hola": "hello", "vacía": ""},
		"ko": {"안녕": "hello"},
	})

	t.Run("exact hit", func(t *testing.T) {
		got, ok := store.Lookup("es", "hola")
		assert.True(t, ok)
		assert.Equal(t, "hello", got)
	})

	t.Run("phrases are scoped per locale", func(t *testing.T) {
		_, ok := store.Lookup("ko", "hola")
		assert.False(t, ok)
	})

	t.Run("unknown locale", func(t *testing.T) {
		_, ok := store.Lookup("vi", "hola")
		assert.False(t, ok)
	})

	t.Run("lookups are exact, not normalized", func(t *testing.T) {
		_, ok := store.Lookup("es", "Hola")
		assert.False(t, ok)
	})

	t.Run("empty curated value is treated as absent", func(t *testing.T) {
		_, ok := store.Lookup("es", "vacía")
		assert.False(t, ok)
	})
}

func TestLen(t *testing.T) {
	assert.Equal(t, 0, NewStore(nil).Len())
	assert.Equal(t, 3, NewStore(map[string]map[string]string{
		"es": {"a": "x", "b": "y"},
		"ru": {"c": "z"},
	}).Len())
}
