package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/bellevuewa/chatbot-multilingual/pkg/logger"
)

// DocumentStore fetches a keyed content document and returns its value
// field as raw JSON text.
type DocumentStore interface {
	GetDocument(ctx context.Context, name string) (string, error)
}

// PostgresStore reads content documents from the content_documents table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a content document store backed by Postgres.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// GetDocument retrieves the value of the named document.
func (s *PostgresStore) GetDocument(ctx context.Context, name string) (string, error) {
	query := `
		SELECT value
		FROM content_documents
		WHERE name = $1
	`

	var value string
	err := s.pool.QueryRow(ctx, query, name).Scan(&value)
	if err == pgx.ErrNoRows {
		return "", fmt.Errorf("content document %q not found", name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get content document %q: %w", name, err)
	}
	return value, nil
}

// resourceFile is the shape of a local fallback file under resourcesPath.
type resourceFile struct {
	Value json.RawMessage `json:"value"`
}

// fetchDocument tries the store first and falls back to a local file
// named <key>.json under resourcesPath when the store call fails or the
// value is empty.
func fetchDocument(ctx context.Context, store DocumentStore, resourcesPath, key string) (string, error) {
	if store != nil {
		value, err := store.GetDocument(ctx, key)
		if err == nil && value != "" {
			return value, nil
		}
		if err != nil {
			logger.Warn("content store lookup failed, trying local resource file",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}

	data, err := os.ReadFile(filepath.Join(resourcesPath, key+".json"))
	if err != nil {
		return "", &LoadError{Key: key, Err: err}
	}

	var file resourceFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", &LoadError{Key: key, Err: fmt.Errorf("decode resource file: %w", err)}
	}
	if len(file.Value) == 0 {
		return "", &LoadError{Key: key, Err: fmt.Errorf("resource file has no value field")}
	}

	return string(file.Value), nil
}

// decodeLocalizedValues decodes a per-locale content array, failing fast
// on shape mismatch instead of failing at first field access.
func decodeLocalizedValues(key, doc string) (map[string]string, error) {
	var values []LocalizedValue
	if err := json.Unmarshal([]byte(doc), &values); err != nil {
		return nil, &LoadError{Key: key, Err: fmt.Errorf("expected array of {language, value}: %w", err)}
	}

	byLocale := make(map[string]string, len(values))
	for _, v := range values {
		if v.Language == "" {
			return nil, &LoadError{Key: key, Err: fmt.Errorf("entry with empty language")}
		}
		byLocale[v.Language] = v.Value
	}
	return byLocale, nil
}

// decodeFlags decodes the appsettings document.
func decodeFlags(doc string) (Flags, error) {
	var settings appSettingsDoc
	if err := json.Unmarshal([]byte(doc), &settings); err != nil {
		return Flags{}, &LoadError{Key: KeyAppSettings, Err: err}
	}
	return Flags{
		RequestUserFeedback: settings.IsRequestingUserFeedback == "Y",
		SupportMultilingual: settings.IsSupportingMultiLingual == "Y",
		LogInteractions:     settings.IsLogging == "Y",
	}, nil
}
