// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deep-research/pkg/types"
)

func sampleResult() *types.RunResult {
	return &types.RunResult{
		Topic: "fusion viability",
		Plan:  []string{"step one"},
		Steps: []types.StepResult{
			{
				Index: 0, Step: "step one",
				Finding: "finding body with https://arxiv.org/abs/1",
				Verdict: types.Verdict{Score: 1.0, Status: types.VerdictPass, TotalURLs: 1, TrustedURLs: 1},
			},
		},
		Reflection: types.Reflection{Draft: "the draft", Critique: "the critique", Report: "the report"},
		Started:    time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
		Finished:   time.Date(2026, 5, 1, 10, 3, 0, 0, time.UTC),
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "run1")

	written, err := Write(dir, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 5 {
		t.Fatalf("wrote %d files, want 5", len(written))
	}

	read := func(name string) string {
		t.Helper()
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	if got := read("report.md"); !strings.Contains(got, "# Research Analysis: fusion viability") ||
		!strings.Contains(got, "the report") {
		t.Errorf("report.md = %q", got)
	}
	if got := read("draft.md"); !strings.Contains(got, "the draft") {
		t.Errorf("draft.md = %q", got)
	}
	if got := read("critique.md"); !strings.Contains(got, "the critique") {
		t.Errorf("critique.md = %q", got)
	}

	findings := read("findings.md")
	if !strings.Contains(findings, "## Findings for: step one") {
		t.Errorf("findings.md missing step heading: %q", findings)
	}
	if !strings.Contains(findings, "Source quality: PASS") {
		t.Errorf("findings.md missing verdict: %q", findings)
	}
}

func TestWriteSummaryYAML(t *testing.T) {
	dir := t.TempDir()
	if _, err := Write(dir, sampleResult()); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "summary.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	var sum struct {
		Topic string `yaml:"topic"`
		Steps []struct {
			Step    string `yaml:"step"`
			Verdict struct {
				Score  float64 `yaml:"score"`
				Status string  `yaml:"status"`
			} `yaml:"verdict"`
		} `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &sum); err != nil {
		t.Fatal(err)
	}

	if sum.Topic != "fusion viability" {
		t.Errorf("topic = %q", sum.Topic)
	}
	if len(sum.Steps) != 1 || sum.Steps[0].Verdict.Status != "PASS" || sum.Steps[0].Verdict.Score != 1.0 {
		t.Errorf("steps = %+v", sum.Steps)
	}
	// The finding body stays out of the summary.
	if strings.Contains(string(data), "finding body") {
		t.Error("summary.yaml should not embed finding text")
	}
}
