// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan decomposes a research topic into an ordered list of atomic
// research steps by prompting a high-reasoning model.
package plan

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/pdiddy/deep-research/internal/gateway"
)

// decompositionTmpl instructs the planner model to produce 4-5 atomic,
// sequential steps as a literal list of strings.
var decompositionTmpl = template.Must(template.New("decomposition").Parse(
	`You are a Research Architect. Decompose the topic "{{.Topic}}" into 4-5 atomic, sequential research steps. Return ONLY a valid list of strings, e.g. ["first step", "second step"].`))

// Planner generates research plans through the model gateway.
type Planner struct {
	gw    gateway.Gateway
	model string
}

// New builds a Planner using model (a "provider:model" identifier).
func New(gw gateway.Gateway, model string) *Planner {
	return &Planner{gw: gw, model: model}
}

// Plan decomposes topic into ordered research steps. The model's response is
// scanned for the first valid list-literal substring; when none decodes, or
// the list is empty, the plan degenerates to the topic itself so the
// pipeline never aborts on a malformed planning response. Gateway errors
// still propagate.
func (p *Planner) Plan(ctx context.Context, topic string) ([]string, error) {
	var buf bytes.Buffer
	if err := decompositionTmpl.Execute(&buf, struct{ Topic string }{Topic: topic}); err != nil {
		return nil, fmt.Errorf("rendering decomposition prompt: %w", err)
	}

	content, err := p.gw.Invoke(ctx, p.model, []gateway.Message{gateway.User(buf.String())})
	if err != nil {
		return nil, fmt.Errorf("planning %q: %w", topic, err)
	}

	steps, ok := DecodeFirstList(content)
	if !ok || len(steps) == 0 {
		return []string{topic}, nil
	}
	return steps, nil
}
