// Package urlmap resolves canonical English URLs to their per-locale
// equivalents, with a computed fallback for one known site section.
package urlmap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/bellevuewa/chatbot-multilingual/internal/locale"
	"github.com/bellevuewa/chatbot-multilingual/pkg/logger"
)

// communityResourcesPrefix is the one canonical section with a known
// per-language layout on the site.
const communityResourcesPrefix = "https://bellevuewa.gov/city-government/departments/city-managers-office/communications/emergencies/covid-19/community-resources"

// ProbeFunc reports whether a candidate URL is live. fragment, when
// non-empty, must occur in the fetched page body (anchor ids disappear
// when a page is restructured).
type ProbeFunc func(ctx context.Context, pageURL, fragment string) bool

// Store maps canonical English URLs to per-locale URLs.
// Populated once at process start; read-only after load.
type Store struct {
	// english URL -> locale -> localized URL
	mappings map[string]map[string]string
	probe    ProbeFunc
}

// Load reads every row of the url_mappings table. The zh column serves
// traditional Chinese; simplified requests are normalized before lookup.
func Load(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	query := `
		SELECT en, es, ko, zh, vi, ru
		FROM url_mappings
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load url mappings: %w", err)
	}
	defer rows.Close()

	mappings := make(map[string]map[string]string)
	for rows.Next() {
		var en, es, ko, zh, vi, ru string
		if err := rows.Scan(&en, &es, &ko, &zh, &vi, &ru); err != nil {
			return nil, fmt.Errorf("failed to scan url mapping: %w", err)
		}
		if _, ok := mappings[en]; ok {
			continue
		}
		mappings[en] = map[string]string{
			"es":      es,
			"ko":      ko,
			"zh-Hant": zh,
			"vi":      vi,
			"ru":      ru,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read url mappings: %w", err)
	}

	return &Store{mappings: mappings, probe: liveProbe(5 * time.Second)}, nil
}

// NewStore builds a store from an in-memory mapping (english URL ->
// locale -> URL). probe may be nil to use the live 5-second HTTP probe.
func NewStore(mappings map[string]map[string]string, probe ProbeFunc) *Store {
	if mappings == nil {
		mappings = make(map[string]map[string]string)
	}
	if probe == nil {
		probe = liveProbe(5 * time.Second)
	}
	return &Store{mappings: mappings, probe: probe}
}

// MappedURL resolves the locale-appropriate URL for the canonical
// English one. A missing or empty registered mapping triggers the
// computed fallback rather than use of the stale canonical URL; an
// unverifiable fallback returns the original URL unchanged.
func (s *Store) MappedURL(ctx context.Context, englishURL, loc string) string {
	byLocale, ok := s.mappings[englishURL]
	if !ok {
		return s.automatedMapping(ctx, englishURL, loc)
	}

	if loc == "zh-Hans" {
		loc = "zh-Hant" // only traditional Chinese content exists
	}
	mapped, ok := byLocale[loc]
	if !ok || mapped == "" {
		return s.automatedMapping(ctx, englishURL, loc)
	}
	return mapped
}

// automatedMapping substitutes the known per-language path pattern and
// verifies the candidate is reachable before using it.
func (s *Store) automatedMapping(ctx context.Context, englishURL, loc string) string {
	parsed, err := url.Parse(englishURL)
	if err != nil {
		return englishURL
	}

	fragment := parsed.Fragment
	page := pageMapping(stripFragment(parsed), loc)
	candidate := page
	if fragment != "" {
		candidate = page + "#" + fragment
	}
	if candidate == englishURL {
		return englishURL
	}

	if !s.probe(ctx, page, fragment) {
		// Display the English version if the localized page is not there.
		return englishURL
	}
	return candidate
}

func pageMapping(pageURL, loc string) string {
	if !strings.HasPrefix(strings.ToLower(pageURL), communityResourcesPrefix) {
		return pageURL // not mapped
	}
	pathName, ok := locale.PathName(loc)
	if !ok {
		return pageURL
	}
	return fmt.Sprintf("https://bellevuewa.gov/%s/covid-19/community-resources", pathName)
}

func stripFragment(u *url.URL) string {
	copied := *u
	copied.Fragment = ""
	copied.RawQuery = ""
	return copied.String()
}

// liveProbe fetches the page with a bounded timeout. A timeout or any
// transport error counts as unreachable, never success. Probe failures
// stay best-effort: they are logged and the caller falls back.
func liveProbe(timeout time.Duration) ProbeFunc {
	client := &http.Client{Timeout: timeout}
	return func(ctx context.Context, pageURL, fragment string) bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return false
		}
		resp, err := client.Do(req)
		if err != nil {
			logger.Debug("url liveness probe failed", zap.String("url", pageURL), zap.Error(err))
			return false
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return false
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		if fragment != "" {
			return strings.Contains(string(body), fragment)
		}
		return len(body) > 0
	}
}
