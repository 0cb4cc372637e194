// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes a run's artifacts to an output directory as plain
// files: the final report, the intermediate draft and critique, the labeled
// findings, and a YAML summary. Rendering beyond Markdown is left to
// whatever consumes the files.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deep-research/pkg/types"
)

const (
	reportFile   = "report.md"
	draftFile    = "draft.md"
	critiqueFile = "critique.md"
	findingsFile = "findings.md"
	summaryFile  = "summary.yaml"
)

// stepSummary is one plan step in summary.yaml, without the finding body.
type stepSummary struct {
	Index   int           `yaml:"index"`
	Step    string        `yaml:"step"`
	Verdict types.Verdict `yaml:"verdict"`
}

// summary is the shape of summary.yaml.
type summary struct {
	Topic    string        `yaml:"topic"`
	Started  time.Time     `yaml:"started"`
	Finished time.Time     `yaml:"finished"`
	Steps    []stepSummary `yaml:"steps"`
}

// Write renders the run's artifacts into dir, creating it if needed.
// Returns the paths written, report first.
func Write(dir string, result *types.RunResult) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files := map[string]string{
		reportFile:   fmt.Sprintf("# Research Analysis: %s\n\n%s\n", result.Topic, result.Reflection.Report),
		draftFile:    result.Reflection.Draft + "\n",
		critiqueFile: result.Reflection.Critique + "\n",
		findingsFile: renderFindings(result),
	}

	sum := summary{
		Topic:    result.Topic,
		Started:  result.Started,
		Finished: result.Finished,
	}
	for _, sr := range result.Steps {
		sum.Steps = append(sum.Steps, stepSummary{Index: sr.Index, Step: sr.Step, Verdict: sr.Verdict})
	}
	sumData, err := yaml.Marshal(&sum)
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}
	files[summaryFile] = string(sumData)

	order := []string{reportFile, draftFile, critiqueFile, findingsFile, summaryFile}
	var written []string
	for _, name := range order {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// renderFindings formats the per-step findings with their verdicts.
func renderFindings(result *types.RunResult) string {
	var b []byte
	for _, sr := range result.Steps {
		b = fmt.Appendf(b, "## Findings for: %s\n\n", sr.Step)
		b = fmt.Appendf(b, "Source quality: %s (%.1f%% preferred domains, %d/%d URLs)\n\n",
			sr.Verdict.Status, sr.Verdict.Score*100, sr.Verdict.TrustedURLs, sr.Verdict.TotalURLs)
		b = fmt.Appendf(b, "%s\n\n", sr.Finding)
	}
	return string(b)
}
