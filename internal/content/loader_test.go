package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	docs map[string]string
}

func (s *stubStore) GetDocument(ctx context.Context, name string) (string, error) {
	doc, ok := s.docs[name]
	if !ok {
		return "", errors.New("not found")
	}
	return doc, nil
}

func TestDecodeLocalizedValues(t *testing.T) {
	t.Run("valid array", func(t *testing.T) {
		doc := `[{"language":"en","value":"hello"},{"language":"es","value":"hola"}]`
		got, err := decodeLocalizedValues("SomeKey", doc)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"en": "hello", "es": "hola"}, got)
	})

	t.Run("shape mismatch fails fast", func(t *testing.T) {
		_, err := decodeLocalizedValues("SomeKey", `{"language":"en"}`)
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "SomeKey", loadErr.Key)
	})

	t.Run("empty language rejected", func(t *testing.T) {
		_, err := decodeLocalizedValues("SomeKey", `[{"language":"","value":"x"}]`)
		assert.Error(t, err)
	})
}

func TestDecodeFlags(t *testing.T) {
	flags, err := decodeFlags(`{"IsRequestingUserFeedback":"Y","IsSupportingMultiLingual":"N","IsLogging":"Y"}`)
	require.NoError(t, err)
	assert.True(t, flags.RequestUserFeedback)
	assert.False(t, flags.SupportMultilingual)
	assert.True(t, flags.LogInteractions)

	_, err = decodeFlags(`not json`)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, KeyAppSettings, loadErr.Key)
}

func TestFetchDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "appsettings.json"),
		[]byte(`{"value":{"IsLogging":"Y"}}`),
		0o644,
	))

	t.Run("store value wins", func(t *testing.T) {
		store := &stubStore{docs: map[string]string{"appsettings": `{"IsLogging":"N"}`}}
		doc, err := fetchDocument(context.Background(), store, dir, "appsettings")
		require.NoError(t, err)
		assert.JSONEq(t, `{"IsLogging":"N"}`, doc)
	})

	t.Run("store miss falls back to the resource file", func(t *testing.T) {
		doc, err := fetchDocument(context.Background(), &stubStore{}, dir, "appsettings")
		require.NoError(t, err)
		assert.JSONEq(t, `{"IsLogging":"Y"}`, doc)
	})

	t.Run("missing everywhere is a load error", func(t *testing.T) {
		_, err := fetchDocument(context.Background(), &stubStore{}, dir, "nonexistent")
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "nonexistent", loadErr.Key)
	})
}
