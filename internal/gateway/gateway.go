// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway abstracts "send a prompt to a named model, get text back".
// Model identifiers use the "provider:model" form; a Registry routes each
// invocation to the matching provider backend. The gateway holds no business
// logic: no caching, no retries, one outbound call per invocation.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/deep-research/pkg/types"
)

// Message roles understood by every provider backend.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged turn in a model conversation.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// System returns a system-role message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User returns a user-role message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

var (
	// ErrInvalidModel reports a model identifier that names no configured
	// provider. Detected before any network traffic.
	ErrInvalidModel = errors.New("invalid model identifier")

	// ErrModelUnavailable reports a transport or service failure while
	// calling a provider.
	ErrModelUnavailable = errors.New("model unavailable")
)

// Gateway sends an ordered message sequence to a named model and returns the
// completion text. Agents depend on this interface so tests can supply a mock.
type Gateway interface {
	Invoke(ctx context.Context, model string, msgs []Message) (string, error)
}

// Provider serves completions for a single vendor's models. Each backend
// (OpenAI, Anthropic) implements this interface per the Strategy pattern.
type Provider interface {
	Name() string
	Complete(ctx context.Context, model string, msgs []Message) (string, error)
}

// Registry maps provider names to backends and implements Gateway.
type Registry struct {
	providers map[string]Provider
	timeout   time.Duration
}

// NewRegistry builds a Registry from gateway configuration. Backends are
// registered only for providers with credentials, so an unconfigured
// provider surfaces as ErrInvalidModel rather than an authentication error.
func NewRegistry(cfg types.GatewayConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		timeout:   cfg.Timeout,
	}
	if cfg.OpenAIAPIKey != "" {
		r.Register(NewOpenAIProvider(cfg.OpenAIAPIKey))
	}
	if cfg.AnthropicAPIKey != "" {
		r.Register(&AnthropicProvider{APIKey: cfg.AnthropicAPIKey})
	}
	return r
}

// Register adds a provider backend, replacing any backend with the same name.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Providers returns the sorted names of registered backends.
func (r *Registry) Providers() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	// Small map; insertion sort keeps output stable for display.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

// Invoke resolves the "provider:model" identifier and forwards the messages
// to the matching backend. Transport and service failures are wrapped in
// ErrModelUnavailable; identifier problems in ErrInvalidModel.
func (r *Registry) Invoke(ctx context.Context, identifier string, msgs []Message) (string, error) {
	provider, model, ok := strings.Cut(identifier, ":")
	if !ok || provider == "" || model == "" {
		return "", fmt.Errorf("%w: %q (want provider:model)", ErrInvalidModel, identifier)
	}

	backend, ok := r.providers[provider]
	if !ok {
		return "", fmt.Errorf("%w: no %q provider configured", ErrInvalidModel, provider)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	text, err := backend.Complete(ctx, model, msgs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrModelUnavailable, identifier, err)
	}
	return text, nil
}
