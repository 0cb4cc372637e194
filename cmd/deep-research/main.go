// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deep-research CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deep-research/internal/secrets"
	"github.com/pdiddy/deep-research/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, otherwise the secret value
// for key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the deep-research CLI.
var rootCmd = &cobra.Command{
	Use:   "deep-research",
	Short: "Multi-agent research pipeline producing polished reports",
	Long: `deep-research turns a broad research topic into a polished report through
a sequence of specialized model invocations: a planner decomposes the topic
into atomic steps, a researcher executes each step with automated
source-quality evaluation, and a writer-editor reflection loop drafts,
critiques, and revises the final report.

Model roles (planner, researcher, writer, editor) are configured
independently and resolved through a provider gateway (openai:*, anthropic:*).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deep-research.yaml or ~/.config/deep-research/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deep-research")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deep-research"))
		}
	}

	viper.SetEnvPrefix("DEEP_RESEARCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// gatewayConfig resolves gateway credentials from config, environment, and
// the secrets directory.
func gatewayConfig() types.GatewayConfig {
	timeout, _ := time.ParseDuration(viper.GetString("gateway.timeout"))
	return types.GatewayConfig{
		OpenAIAPIKey:    secretDefault(secrets.KeyOpenAI, viper.GetString("gateway.openai_api_key")),
		AnthropicAPIKey: secretDefault(secrets.KeyAnthropic, viper.GetString("gateway.anthropic_api_key")),
		Timeout:         timeout,
	}
}

// modelsConfig resolves model-role assignments from config and flags.
// Unset roles stay empty; the pipeline fills in defaults.
func modelsConfig(cmd *cobra.Command) types.ModelsConfig {
	m := types.ModelsConfig{
		Planner:    viper.GetString("models.planner"),
		Researcher: viper.GetString("models.researcher"),
		Writer:     viper.GetString("models.writer"),
		Editor:     viper.GetString("models.editor"),
	}
	if v, _ := cmd.Flags().GetString("planner-model"); v != "" {
		m.Planner = v
	}
	if v, _ := cmd.Flags().GetString("researcher-model"); v != "" {
		m.Researcher = v
	}
	if v, _ := cmd.Flags().GetString("writer-model"); v != "" {
		m.Writer = v
	}
	if v, _ := cmd.Flags().GetString("editor-model"); v != "" {
		m.Editor = v
	}
	return m
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
