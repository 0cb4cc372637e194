// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data model and configuration shared across
// pipeline stages.
package types

import "time"

// VerdictStatus is the pass/fail outcome of a source-quality evaluation.
type VerdictStatus string

const (
	VerdictPass VerdictStatus = "PASS"
	VerdictFail VerdictStatus = "FAIL"
)

// Verdict records the credibility of one finding's citation set. It is
// derived from the finding text and recomputable from it.
type Verdict struct {
	// Score is the trusted-to-total URL ratio in [0, 1]. Zero URLs score 0.0.
	Score float64 `json:"score" yaml:"score"`

	// Status is PASS when Score is strictly greater than 0.5.
	Status VerdictStatus `json:"status" yaml:"status"`

	// TotalURLs is the number of URLs found in the finding, duplicates included.
	TotalURLs int `json:"total_urls" yaml:"total_urls"`

	// TrustedURLs is the number of URLs matching a preferred domain.
	TrustedURLs int `json:"trusted_urls" yaml:"trusted_urls"`
}

// Passed reports whether the verdict cleared the credibility threshold.
func (v Verdict) Passed() bool {
	return v.Status == VerdictPass
}

// StepResult holds everything produced for one research step.
type StepResult struct {
	// Index is the step's position in the plan, starting at zero.
	Index int `json:"index" yaml:"index"`

	// Step is the atomic task description from the plan. Immutable.
	Step string `json:"step" yaml:"step"`

	// Finding is the researcher's raw output, captured verbatim.
	Finding string `json:"finding" yaml:"finding"`

	// Verdict is the source-quality evaluation of the finding. Advisory
	// only; it never gates downstream work.
	Verdict Verdict `json:"verdict" yaml:"verdict"`
}

// Reflection holds the three texts produced by the drafting/reflection loop.
type Reflection struct {
	// Draft is the initial report text.
	Draft string `json:"draft" yaml:"draft"`

	// Critique evaluates the draft for academic depth and accuracy.
	Critique string `json:"critique" yaml:"critique"`

	// Report is the final revised report.
	Report string `json:"report" yaml:"report"`
}

// RunResult is the complete output of one pipeline run.
type RunResult struct {
	// Topic is the research topic as given.
	Topic string `json:"topic" yaml:"topic"`

	// Plan is the ordered list of research steps. Never empty.
	Plan []string `json:"plan" yaml:"plan"`

	// Steps holds one result per plan step, in plan order.
	Steps []StepResult `json:"steps" yaml:"steps"`

	// Reflection holds the draft, critique, and final report.
	Reflection Reflection `json:"reflection" yaml:"reflection"`

	// Started and Finished bound the run's wall-clock duration.
	Started  time.Time `json:"started" yaml:"started"`
	Finished time.Time `json:"finished" yaml:"finished"`
}

// Report returns the final report text, the run's terminal artifact.
func (r *RunResult) Report() string {
	return r.Reflection.Report
}
