package translator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-key", 2*time.Second, nil)
}

func TestDetect_AlternativeOutranksPrimary(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detect", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		w.Write([]byte(`[{"language":"fr","score":0.9,"alternatives":[{"language":"es","score":0.95}]}]`))
	})

	// The primary guess is outside the candidate set; the supported
	// alternative with the higher score must win.
	detected, err := client.Detect(context.Background(), "hola amigo", []string{"es", "en"})
	require.NoError(t, err)
	assert.Equal(t, "es", detected)
}

func TestDetect_PrimaryWinsWhenSupported(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"language":"ru","score":0.99,"alternatives":[{"language":"en","score":0.4}]}]`))
	})

	detected, err := client.Detect(context.Background(), "привет", []string{"en", "ru"})
	require.NoError(t, err)
	assert.Equal(t, "ru", detected)
}

func TestDetect_NoQualifyingCandidate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"language":"fr","score":0.9,"alternatives":[{"language":"de","score":0.8}]}]`))
	})

	detected, err := client.Detect(context.Background(), "bonjour", []string{"es", "en"})
	require.NoError(t, err)
	assert.Empty(t, detected)
}

func TestTranslate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, "es", r.URL.Query().Get("to"))
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		assert.True(t, strings.Contains(string(body), "hello"))
		w.Write([]byte(`[{"translations":[{"text":"hola"}]}]`))
	})

	translated, err := client.Translate(context.Background(), "hello", "es")
	require.NoError(t, err)
	assert.Equal(t, "hola", translated)
}

func TestTranslate_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Translate(context.Background(), "hello", "es")
	require.Error(t, err)

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Equal(t, http.StatusForbidden, serviceErr.StatusCode)
	assert.Equal(t, "translate", serviceErr.Operation)
}

func TestTranslate_EmptyResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.Translate(context.Background(), "hello", "es")
	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
}

func TestTranslate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[{"translations":[{"text":"late"}]}]`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-key", 50*time.Millisecond, nil)
	_, err := client.Translate(context.Background(), "hello", "es")

	// A timeout is a translation failure, never success.
	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
}
