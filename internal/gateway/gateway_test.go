// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/deep-research/pkg/types"
)

// stubProvider records the last call and returns a canned response.
type stubProvider struct {
	name  string
	text  string
	err   error
	model string
	msgs  []Message
	calls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Complete(_ context.Context, model string, msgs []Message) (string, error) {
	s.calls++
	s.model = model
	s.msgs = msgs
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func TestInvokeRoutesToProvider(t *testing.T) {
	stub := &stubProvider{name: "openai", text: "completion text"}
	r := NewRegistry(types.GatewayConfig{})
	r.Register(stub)

	msgs := []Message{System("be terse"), User("hello")}
	got, err := r.Invoke(context.Background(), "openai:gpt-4o", msgs)
	require.NoError(t, err)

	assert.Equal(t, "completion text", got)
	assert.Equal(t, "gpt-4o", stub.model)
	assert.Equal(t, msgs, stub.msgs)
	assert.Equal(t, 1, stub.calls)
}

func TestInvokeInvalidIdentifier(t *testing.T) {
	r := NewRegistry(types.GatewayConfig{})
	r.Register(&stubProvider{name: "openai", text: "x"})

	tests := []struct {
		name       string
		identifier string
	}{
		{"no separator", "gpt-4o"},
		{"empty model", "openai:"},
		{"empty provider", ":gpt-4o"},
		{"unknown provider", "acme:gpt-4o"},
		{"empty identifier", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Invoke(context.Background(), tt.identifier, []Message{User("hi")})
			assert.ErrorIs(t, err, ErrInvalidModel)
		})
	}
}

func TestInvokeWrapsTransportFailure(t *testing.T) {
	stub := &stubProvider{name: "openai", err: fmt.Errorf("connection refused")}
	r := NewRegistry(types.GatewayConfig{})
	r.Register(stub)

	_, err := r.Invoke(context.Background(), "openai:gpt-4o", []Message{User("hi")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestInvokeNoCachingAcrossCalls(t *testing.T) {
	stub := &stubProvider{name: "openai", text: "same"}
	r := NewRegistry(types.GatewayConfig{})
	r.Register(stub)

	msgs := []Message{User("repeat me")}
	for i := 0; i < 3; i++ {
		_, err := r.Invoke(context.Background(), "openai:gpt-4o", msgs)
		require.NoError(t, err)
	}
	// Identical messages still produce one outbound call each.
	assert.Equal(t, 3, stub.calls)
}

func TestNewRegistryRegistersConfiguredProviders(t *testing.T) {
	r := NewRegistry(types.GatewayConfig{
		OpenAIAPIKey:    "sk-test",
		AnthropicAPIKey: "ak-test",
	})
	assert.Equal(t, []string{"anthropic", "openai"}, r.Providers())

	empty := NewRegistry(types.GatewayConfig{})
	assert.Empty(t, empty.Providers())
}
