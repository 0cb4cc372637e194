// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research executes single research steps against a model tuned for
// tool-style interaction. Findings are the raw model output, captured
// verbatim with whatever citations and URLs the model embedded.
package research

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/deep-research/internal/gateway"
)

// Researcher runs one best-effort gateway call per research step. Deeper
// tool orchestration is delegated to the Tools collaborator, which the
// researcher treats as optional enrichment.
type Researcher struct {
	gw    gateway.Gateway
	model string
	tools Tools
	now   func() time.Time
}

// New builds a Researcher using model (a "provider:model" identifier).
func New(gw gateway.Gateway, model string) *Researcher {
	return &Researcher{
		gw:    gw,
		model: model,
		tools: StubTools{},
		now:   time.Now,
	}
}

// Tools returns the research-tools collaborator for this researcher.
func (r *Researcher) Tools() Tools {
	return r.tools
}

// Research executes one step and returns the model's response text verbatim.
// The prompt carries the current date so the model anchors recency claims,
// and explicitly requests citations and URLs.
func (r *Researcher) Research(ctx context.Context, step string) (string, error) {
	date := r.now().Format("2006-01-02")
	prompt := fmt.Sprintf("Date: %s. Perform deep research on: %s. Provide citations and URLs.", date, step)

	finding, err := r.gw.Invoke(ctx, r.model, []gateway.Message{gateway.User(prompt)})
	if err != nil {
		return "", fmt.Errorf("researching %q: %w", step, err)
	}
	return finding, nil
}
