// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose runs the three-phase write, critique, revise loop over
// accumulated findings, producing the final report.
package compose

import (
	"context"
	"fmt"

	"github.com/pdiddy/deep-research/internal/gateway"
	"github.com/pdiddy/deep-research/pkg/types"
)

// reviseInstruction is the system turn for the revision phase.
const reviseInstruction = "Revise based on critique."

// Engine produces a final report through three strictly sequential gateway
// calls: draft (writer model), critique (editor model), revise (writer
// model). Every run executes all three phases exactly once.
type Engine struct {
	gw          gateway.Gateway
	writerModel string
	editorModel string
}

// New builds an Engine. The writer model is tuned for synthesis, the editor
// model for critical reflection; the two are configured independently.
func New(gw gateway.Gateway, writerModel, editorModel string) *Engine {
	return &Engine{gw: gw, writerModel: writerModel, editorModel: editorModel}
}

// Compose drafts a report from the topic and corpus, critiques it, and
// revises it in light of the critique. Each phase consumes the prior
// phase's full output; no truncation happens between phases.
func (e *Engine) Compose(ctx context.Context, topic, corpus string) (types.Reflection, error) {
	draft, err := e.gw.Invoke(ctx, e.writerModel, []gateway.Message{
		gateway.User(draftPrompt(topic, corpus)),
	})
	if err != nil {
		return types.Reflection{}, fmt.Errorf("drafting: %w", err)
	}

	critique, err := e.gw.Invoke(ctx, e.editorModel, []gateway.Message{
		gateway.User(critiquePrompt(draft)),
	})
	if err != nil {
		return types.Reflection{}, fmt.Errorf("critiquing: %w", err)
	}

	report, err := e.gw.Invoke(ctx, e.writerModel, []gateway.Message{
		gateway.System(reviseInstruction),
		gateway.User(revisePrompt(critique, draft)),
	})
	if err != nil {
		return types.Reflection{}, fmt.Errorf("revising: %w", err)
	}

	return types.Reflection{
		Draft:    draft,
		Critique: critique,
		Report:   report,
	}, nil
}

func draftPrompt(topic, corpus string) string {
	return fmt.Sprintf("Draft an in-depth report on %s using: %s", topic, corpus)
}

func critiquePrompt(draft string) string {
	return fmt.Sprintf("Critique this for academic depth and accuracy:\n%s", draft)
}

func revisePrompt(critique, draft string) string {
	return fmt.Sprintf("Critique: %s\n\nDraft: %s", critique, draft)
}
