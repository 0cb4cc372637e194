// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the research workflow: plan decomposition,
// per-step research with source-quality evaluation, and the drafting/
// reflection loop. The orchestrator owns all intermediate state; every
// other component is driven from here.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/deep-research/internal/compose"
	"github.com/pdiddy/deep-research/internal/evaluate"
	"github.com/pdiddy/deep-research/internal/gateway"
	"github.com/pdiddy/deep-research/internal/plan"
	"github.com/pdiddy/deep-research/internal/research"
	"github.com/pdiddy/deep-research/internal/retry"
	"github.com/pdiddy/deep-research/pkg/types"
)

// Pipeline runs the end-to-end research workflow for one topic at a time.
type Pipeline struct {
	planner    *plan.Planner
	researcher *research.Researcher
	engine     *compose.Engine
	parallel   bool
}

// New wires a Pipeline from configuration. Empty model roles fall back to
// the defaults. When cfg.MaxRetries is positive, gateway calls are wrapped
// in bounded retry; the default is fail-fast.
func New(gw gateway.Gateway, cfg types.PipelineConfig) *Pipeline {
	models := withDefaults(cfg.Models)
	gw = retry.Wrap(gw, cfg.MaxRetries)

	return &Pipeline{
		planner:    plan.New(gw, models.Planner),
		researcher: research.New(gw, models.Researcher),
		engine:     compose.New(gw, models.Writer, models.Editor),
		parallel:   cfg.Parallel,
	}
}

// withDefaults fills unset model roles from the default assignments.
func withDefaults(m types.ModelsConfig) types.ModelsConfig {
	def := types.DefaultModels()
	if m.Planner == "" {
		m.Planner = def.Planner
	}
	if m.Researcher == "" {
		m.Researcher = def.Researcher
	}
	if m.Writer == "" {
		m.Writer = def.Writer
	}
	if m.Editor == "" {
		m.Editor = def.Editor
	}
	return m
}

// Run executes the full pipeline for topic, writing human-readable progress
// to w. Gateway failures abort the run; partial artifacts are discarded.
// On success the result carries exactly one verdict per plan step, in plan
// order.
func (p *Pipeline) Run(ctx context.Context, topic string, w io.Writer) (*types.RunResult, error) {
	started := time.Now()

	fmt.Fprintf(w, "Research analysis: %s\n\n", topic)

	steps, err := p.planner.Plan(ctx, topic)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "plan (%d steps):\n", len(steps))
	for i, step := range steps {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
	fmt.Fprintln(w)

	var results []types.StepResult
	if p.parallel {
		results, err = p.researchParallel(ctx, steps, w)
	} else {
		results, err = p.researchSequential(ctx, steps, w)
	}
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "\ncomposing report (draft, critique, revise)...\n")

	reflection, err := p.engine.Compose(ctx, topic, BuildCorpus(results))
	if err != nil {
		return nil, err
	}

	return &types.RunResult{
		Topic:      topic,
		Plan:       steps,
		Steps:      results,
		Reflection: reflection,
		Started:    started,
		Finished:   time.Now(),
	}, nil
}

// researchSequential executes the steps one after another, evaluating each
// finding as it arrives. A FAIL verdict never blocks the next step.
func (p *Pipeline) researchSequential(ctx context.Context, steps []string, w io.Writer) ([]types.StepResult, error) {
	results := make([]types.StepResult, len(steps))
	for i, step := range steps {
		fmt.Fprintf(w, "researching %d/%d: %s\n", i+1, len(steps), step)

		finding, err := p.researcher.Research(ctx, step)
		if err != nil {
			return nil, err
		}

		verdict := evaluate.Evaluate(finding)
		reportVerdict(w, verdict)

		results[i] = types.StepResult{Index: i, Step: step, Finding: finding, Verdict: verdict}
	}
	return results, nil
}

// researchParallel fans the steps out across goroutines. Each finding is
// written into its plan slot, so the accumulated corpus keeps plan order
// regardless of completion order. Evaluation and progress reporting happen
// afterwards, in plan order.
func (p *Pipeline) researchParallel(ctx context.Context, steps []string, w io.Writer) ([]types.StepResult, error) {
	results := make([]types.StepResult, len(steps))
	errs := make([]error, len(steps))

	var wg sync.WaitGroup
	for i, step := range steps {
		wg.Add(1)
		go func(i int, step string) {
			defer wg.Done()
			finding, err := p.researcher.Research(ctx, step)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = types.StepResult{Index: i, Step: step, Finding: finding}
		}(i, step)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for i := range results {
		fmt.Fprintf(w, "researched %d/%d: %s\n", i+1, len(steps), results[i].Step)
		results[i].Verdict = evaluate.Evaluate(results[i].Finding)
		reportVerdict(w, results[i].Verdict)
	}
	return results, nil
}

func reportVerdict(w io.Writer, v types.Verdict) {
	fmt.Fprintf(w, "  source quality: %s | %.1f%% preferred domains (%d/%d URLs)\n",
		v.Status, v.Score*100, v.TrustedURLs, v.TotalURLs)
}

// BuildCorpus concatenates the findings in plan order, each labeled with
// its originating step.
func BuildCorpus(results []types.StepResult) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "\n\n--- Findings for: %s ---\n%s", r.Step, r.Finding)
	}
	return b.String()
}
