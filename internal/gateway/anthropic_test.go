// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withAnthropicServer points the provider at a test server for one test.
func withAnthropicServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	old := anthropicAPIURL
	anthropicAPIURL = ts.URL
	t.Cleanup(func() {
		anthropicAPIURL = old
		ts.Close()
	})
	return ts
}

func TestAnthropicComplete(t *testing.T) {
	var gotReq anthropicRequest
	var gotHeaders http.Header

	withAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{
				{Type: "text", Text: "part one "},
				{Type: "thinking", Text: "ignored"},
				{Type: "text", Text: "part two"},
			},
		})
	})

	p := &AnthropicProvider{APIKey: "ak-test"}
	got, err := p.Complete(context.Background(), "claude-sonnet-4-5", []Message{
		System("Revise based on critique."),
		User("Critique: weak\n\nDraft: text"),
	})
	require.NoError(t, err)

	assert.Equal(t, "part one part two", got)
	assert.Equal(t, "claude-sonnet-4-5", gotReq.Model)
	// System turns are lifted into the top-level field.
	assert.Equal(t, "Revise based on critique.", gotReq.System)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)

	assert.Equal(t, "ak-test", gotHeaders.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
}

func TestAnthropicCompleteServerError(t *testing.T) {
	withAnthropicServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("overloaded"))
	})

	p := &AnthropicProvider{APIKey: "ak-test"}
	_, err := p.Complete(context.Background(), "claude-sonnet-4-5", []Message{User("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "overloaded")
}

func TestAnthropicCompleteEmptyContent(t *testing.T) {
	withAnthropicServer(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{})
	})

	p := &AnthropicProvider{APIKey: "ak-test"}
	_, err := p.Complete(context.Background(), "claude-sonnet-4-5", []Message{User("hi")})
	assert.Error(t, err)
}
