// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotSupported reports a research-tool capability that has no backing
// implementation. Callers branch on it with errors.Is.
var ErrNotSupported = errors.New("research tool not supported")

// Result is a single item returned by a search capability.
type Result struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Tools is the external research-tools collaborator: concrete arXiv,
// Wikipedia, and web search integrations live behind this interface. The
// minimal pipeline path relies solely on the gateway model's own knowledge,
// so every capability is optional.
type Tools interface {
	SearchArxiv(ctx context.Context, query string) ([]Result, error)
	SearchWikipedia(ctx context.Context, query string) ([]Result, error)
	SearchWeb(ctx context.Context, query string) ([]Result, error)
}

// StubTools is the bundled Tools implementation. Every capability fails
// with ErrNotSupported until a concrete integration is wired in.
type StubTools struct{}

func (StubTools) SearchArxiv(_ context.Context, _ string) ([]Result, error) {
	return nil, fmt.Errorf("%w: arxiv search", ErrNotSupported)
}

func (StubTools) SearchWikipedia(_ context.Context, _ string) ([]Result, error) {
	return nil, fmt.Errorf("%w: wikipedia search", ErrNotSupported)
}

func (StubTools) SearchWeb(_ context.Context, _ string) ([]Result, error) {
	return nil, fmt.Errorf("%w: web search", ErrNotSupported)
}
