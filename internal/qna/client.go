// Package qna is a thin client for the external knowledge-base
// question-answering service. Matching questions to answers is entirely
// the remote service's concern.
package qna

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client queries the remote answer endpoint.
type Client struct {
	endpoint string
	key      string
	http     *http.Client
}

// NewClient creates a knowledge-base client with a bounded timeout.
func NewClient(endpoint, key string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		key:      key,
		http:     &http.Client{Timeout: timeout},
	}
}

type answerRequest struct {
	Question string `json:"question"`
}

type answerResponse struct {
	Answers []struct {
		Answer string  `json:"answer"`
		Score  float64 `json:"score"`
	} `json:"answers"`
}

// Answer returns the best-scoring answer for the question, or "" when
// the service has none.
func (c *Client) Answer(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(answerRequest{Question: question})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "EndpointKey "+c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("answer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("answer service returned HTTP status %d", resp.StatusCode)
	}

	var decoded answerResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode answer response: %w", err)
	}

	best := ""
	bestScore := 0.0
	for _, a := range decoded.Answers {
		if a.Score > bestScore {
			best = a.Answer
			bestScore = a.Score
		}
	}
	return best, nil
}
