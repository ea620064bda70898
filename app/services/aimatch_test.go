package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matcherServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "Kru Somchia")

		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestOpenRouterMatcherParsesVerdict(t *testing.T) {
	srv := matcherServer(t, http.StatusOK, `{"matched_name": "Kru Somchai", "confidence": 0.92, "reasoning": "transposition"}`)
	defer srv.Close()

	m := NewOpenRouterMatcher(srv.URL, "test-key", "test-model", 5*time.Second)
	name, confidence, err := m.MatchName(context.Background(), "Kru Somchia", []string{"Kru Somchai", "Kru Pimol"})

	require.NoError(t, err)
	assert.Equal(t, "Kru Somchai", name)
	assert.Equal(t, 0.92, confidence)
}

func TestOpenRouterMatcherStripsCodeFences(t *testing.T) {
	srv := matcherServer(t, http.StatusOK, "```json\n{\"matched_name\": \"Kru Somchai\", \"confidence\": 0.9}\n```")
	defer srv.Close()

	m := NewOpenRouterMatcher(srv.URL, "test-key", "test-model", 5*time.Second)
	name, confidence, err := m.MatchName(context.Background(), "Kru Somchia", nil)

	require.NoError(t, err)
	assert.Equal(t, "Kru Somchai", name)
	assert.Equal(t, 0.9, confidence)
}

func TestOpenRouterMatcherErrors(t *testing.T) {
	cases := []struct {
		label   string
		status  int
		content string
	}{
		{"upstream error status", http.StatusBadGateway, `{}`},
		{"no match found", http.StatusOK, `{"matched_name": null, "confidence": 0}`},
		{"confidence out of range", http.StatusOK, `{"matched_name": "Kru Somchai", "confidence": 1.4}`},
		{"not json", http.StatusOK, `I think it is Kru Somchai`},
	}
	for _, tc := range cases {
		srv := matcherServer(t, tc.status, tc.content)
		m := NewOpenRouterMatcher(srv.URL, "test-key", "test-model", 5*time.Second)
		_, _, err := m.MatchName(context.Background(), "Kru Somchia", nil)
		assert.Error(t, err, tc.label)
		srv.Close()
	}
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON(`{"a":1}`))
}
