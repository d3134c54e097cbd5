// Package translator wraps the remote text-translation and
// language-detection service. Stateless per call.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/bellevuewa/chatbot-multilingual/pkg/logger"
	"github.com/bellevuewa/chatbot-multilingual/pkg/resilience"
)

const (
	detectPath    = "/detect?api-version=3.0"
	translatePath = "/translate?api-version=3.0"

	subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
)

// Client calls the remote translation service.
type Client struct {
	endpoint string
	key      string
	http     *http.Client
	breaker  *resilience.Breaker
}

// NewClient creates a translation client. timeout bounds every remote
// call so a slow dependency cannot stall a conversation turn. breaker
// may be nil to call the service directly.
func NewClient(endpoint, subscriptionKey string, timeout time.Duration, breaker *resilience.Breaker) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		key:      subscriptionKey,
		http:     &http.Client{Timeout: timeout},
		breaker:  breaker,
	}
}

// Detect sends text to the remote language detector and returns the
// candidate locale with the highest score among the primary guess and
// all alternatives. The primary guess is frequently outside the
// supported set while a lower-ranked alternative is a supported language
// with a still-high score, so every returned guess competes. Returns ""
// when no guess is in candidates.
func (c *Client) Detect(ctx context.Context, text string, candidates []string) (string, error) {
	body, err := c.post(ctx, "detect", c.endpoint+detectPath, text)
	if err != nil {
		return "", err
	}

	var results []DetectResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", &ServiceError{Operation: "detect", Err: fmt.Errorf("decode response: %w", err)}
	}

	allowed := make(map[string]bool, len(candidates))
	for _, l := range candidates {
		allowed[l] = true
	}

	best := ""
	bestScore := -1.0
	for _, r := range results {
		if allowed[r.Language] && r.Score > bestScore {
			best = r.Language
			bestScore = r.Score
		}
		for _, alt := range r.Alternatives {
			if allowed[alt.Language] && alt.Score > bestScore {
				best = alt.Language
				bestScore = alt.Score
			}
		}
	}

	return best, nil
}

// Translate sends text to the remote translator and returns the single
// best translation in the target locale.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	endpoint := c.endpoint + translatePath + "&to=" + url.QueryEscape(target)
	body, err := c.post(ctx, "translate", endpoint, text)
	if err != nil {
		return "", err
	}

	var results []translationResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", &ServiceError{Operation: "translate", Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(results) == 0 || len(results[0].Translations) == 0 {
		return "", &ServiceError{Operation: "translate", Err: fmt.Errorf("empty translation result")}
	}

	return results[0].Translations[0].Text, nil
}

func (c *Client) post(ctx context.Context, operation, endpoint, text string) ([]byte, error) {
	call := func(ctx context.Context) (interface{}, error) {
		return c.doPost(ctx, operation, endpoint, text)
	}

	var result interface{}
	var err error
	if c.breaker != nil {
		result, err = c.breaker.Execute(ctx, call)
		if err == resilience.ErrCircuitOpen {
			return nil, &ServiceError{Operation: operation, Err: err}
		}
	} else {
		result, err = call(ctx)
	}
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func (c *Client) doPost(ctx context.Context, operation, endpoint, text string) ([]byte, error) {
	payload, err := json.Marshal([]textRequest{{Text: text}})
	if err != nil {
		return nil, &ServiceError{Operation: operation, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &ServiceError{Operation: operation, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(subscriptionKeyHeader, c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ServiceError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServiceError{Operation: operation, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("translation service returned non-success status",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &ServiceError{Operation: operation, StatusCode: resp.StatusCode}
	}

	return body, nil
}
