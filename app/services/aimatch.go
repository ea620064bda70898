package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxMatchResponseSize bounds the matcher response body.
const maxMatchResponseSize = 1 << 20 // 1MB

// OpenRouterMatcher implements AIMatcher against an OpenRouter-compatible
// chat-completions endpoint. The expected latency is seconds, so the HTTP
// client carries a hard timeout and every failure surfaces as an error the
// resolver downgrades to a tier miss.
type OpenRouterMatcher struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenRouterMatcher creates a matcher client. timeout bounds the full
// request including connection setup.
func NewOpenRouterMatcher(endpoint, apiKey, model string, timeout time.Duration) *OpenRouterMatcher {
	return &OpenRouterMatcher{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type matchVerdict struct {
	MatchedName string  `json:"matched_name"`
	Confidence  float64 `json:"confidence"`
	Reasoning   string  `json:"reasoning"`
}

// MatchName asks the model to pick the best candidate for a possibly
// misspelled name and returns the matched display name with the model's own
// confidence, accepted verbatim by the resolver.
func (m *OpenRouterMatcher) MatchName(ctx context.Context, raw string, candidates []string) (string, float64, error) {
	body, err := json.Marshal(chatRequest{
		Model: m.model,
		Messages: []chatMessage{
			{Role: "user", Content: buildMatchPrompt(raw, candidates)},
		},
		Temperature: 0.1,
		MaxTokens:   200,
	})
	if err != nil {
		return "", 0, fmt.Errorf("marshal match request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("build match request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("call matcher: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("matcher returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMatchResponseSize))
	if err != nil {
		return "", 0, fmt.Errorf("read matcher response: %w", err)
	}

	var chat chatResponse
	if err := json.Unmarshal(data, &chat); err != nil {
		return "", 0, fmt.Errorf("decode matcher response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", 0, fmt.Errorf("matcher response has no choices")
	}

	var verdict matchVerdict
	if err := json.Unmarshal([]byte(extractJSON(chat.Choices[0].Message.Content)), &verdict); err != nil {
		return "", 0, fmt.Errorf("decode match verdict: %w", err)
	}
	if verdict.MatchedName == "" {
		return "", 0, fmt.Errorf("matcher found no reasonable match")
	}
	if verdict.Confidence < 0 || verdict.Confidence > 1 {
		return "", 0, fmt.Errorf("matcher confidence %v out of range", verdict.Confidence)
	}

	return verdict.MatchedName, verdict.Confidence, nil
}

func buildMatchPrompt(raw string, candidates []string) string {
	var b strings.Builder
	b.WriteString("You are a name matching assistant. Given a possibly misspelled\n")
	b.WriteString("teacher name and a list of valid teacher names, find the best match.\n\n")
	b.WriteString(fmt.Sprintf("Misspelled name: %q\n\nValid teacher names:\n", raw))
	for _, c := range candidates {
		b.WriteString("- " + c + "\n")
	}
	b.WriteString("\nRespond with JSON only:\n")
	b.WriteString(`{"matched_name": "...", "confidence": 0.95, "reasoning": "..."}` + "\n\n")
	b.WriteString("If no reasonable match exists, set matched_name to null and confidence to 0.")
	return b.String()
}

// extractJSON strips markdown code fences that chat models often wrap around
// JSON payloads.
func extractJSON(content string) string {
	if idx := strings.Index(content, "```json"); idx >= 0 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	} else if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[idx+3:]
		if end := strings.Index(content, "```"); end >= 0 {
			content = content[:end]
		}
	}
	return strings.TrimSpace(content)
}
