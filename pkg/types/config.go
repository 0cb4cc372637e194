// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ModelsConfig names the model used for each pipeline role. Identifiers use
// the "provider:model" form resolved by the gateway registry
// (e.g. "openai:gpt-4o", "anthropic:claude-sonnet-4-5").
type ModelsConfig struct {
	// Planner is the model used for topic decomposition (high-reasoning).
	Planner string `json:"planner" yaml:"planner"`

	// Researcher is the model used for per-step research (robust tool interaction).
	Researcher string `json:"researcher" yaml:"researcher"`

	// Writer is the model used for drafting and revision (synthesis).
	Writer string `json:"writer" yaml:"writer"`

	// Editor is the model used for critique (critical reflection).
	Editor string `json:"editor" yaml:"editor"`
}

// DefaultModels returns the model-role assignments used when the config
// file names none.
func DefaultModels() ModelsConfig {
	return ModelsConfig{
		Planner:    "openai:o4-mini",
		Researcher: "openai:gpt-4o",
		Writer:     "openai:gpt-4o",
		Editor:     "openai:o4-mini",
	}
}

// GatewayConfig holds credentials and transport settings for the model
// gateway. Keys left empty here are filled from .secrets/ at startup.
type GatewayConfig struct {
	// OpenAIAPIKey authenticates the OpenAI backend.
	OpenAIAPIKey string `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"`

	// AnthropicAPIKey authenticates the Anthropic backend.
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty" yaml:"anthropic_api_key,omitempty"`

	// Timeout bounds a single model invocation. Zero means no deadline
	// beyond the caller's context.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PipelineConfig holds settings for one pipeline run.
type PipelineConfig struct {
	Models  ModelsConfig  `json:"models" yaml:"models"`
	Gateway GatewayConfig `json:"gateway" yaml:"gateway"`

	// MaxRetries is the number of retry attempts around failed gateway
	// calls. Zero (the default) makes any gateway failure fatal to the run.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Parallel runs research steps concurrently. Findings are still
	// accumulated in plan order.
	Parallel bool `json:"parallel" yaml:"parallel"`

	// OutputDir is the directory for run artifacts (report, draft,
	// critique, summary). Empty disables artifact writing.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
}

// ArchiveConfig holds settings for the run archive.
type ArchiveConfig struct {
	// Enabled records completed runs in the archive database.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory containing the archive database (default "archive").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of archive search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
