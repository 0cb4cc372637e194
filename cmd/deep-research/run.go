// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deep-research/internal/archive"
	"github.com/pdiddy/deep-research/internal/gateway"
	"github.com/pdiddy/deep-research/internal/pipeline"
	"github.com/pdiddy/deep-research/internal/report"
	"github.com/pdiddy/deep-research/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [topic]",
	Short: "Run the full research pipeline for a topic",
	Long: `Run executes the end-to-end pipeline: plan decomposition, per-step
research with source-quality verdicts, and the draft/critique/revise loop.
Progress goes to stderr; the final report goes to stdout.

A gateway failure aborts the run. Verdicts are advisory: a FAIL never
blocks the remaining steps.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	topic := args[0]

	parallel, _ := cmd.Flags().GetBool("parallel")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	archiveRun, _ := cmd.Flags().GetBool("archive")

	cfg := types.PipelineConfig{
		Models:     modelsConfig(cmd),
		Gateway:    gatewayConfig(),
		MaxRetries: maxRetries,
		Parallel:   parallel,
		OutputDir:  outputDir,
	}

	gw := gateway.NewRegistry(cfg.Gateway)
	if len(gw.Providers()) == 0 {
		return fmt.Errorf("no model providers configured: add openai-api-key or anthropic-api-key to .secrets/")
	}

	p := pipeline.New(gw, cfg)
	result, err := p.Run(cmd.Context(), topic, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Println(result.Report())

	if cfg.OutputDir != "" {
		written, err := report.Write(cfg.OutputDir, result)
		if err != nil {
			return err
		}
		for _, path := range written {
			fmt.Fprintf(os.Stderr, "wrote %s\n", path)
		}
	}

	if archiveRun {
		store, err := archive.NewStore(archiveConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Save(cmd.Context(), result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "archived run %s\n", id)
	}

	return nil
}

// archiveConfig resolves archive settings from config and flags.
func archiveConfig(cmd *cobra.Command) types.ArchiveConfig {
	cfg := types.ArchiveConfig{
		Dir:        viper.GetString("archive.dir"),
		MaxResults: viper.GetInt("archive.max_results"),
	}
	if v, _ := cmd.Flags().GetString("archive-dir"); v != "" {
		cfg.Dir = v
	}
	return cfg
}

func init() {
	runCmd.Flags().String("planner-model", "", "model for topic decomposition (default openai:o4-mini)")
	runCmd.Flags().String("researcher-model", "", "model for per-step research (default openai:gpt-4o)")
	runCmd.Flags().String("writer-model", "", "model for drafting and revision (default openai:gpt-4o)")
	runCmd.Flags().String("editor-model", "", "model for critique (default openai:o4-mini)")
	runCmd.Flags().Bool("parallel", false, "research steps concurrently (corpus stays in plan order)")
	runCmd.Flags().Int("max-retries", 0, "retry attempts for failed gateway calls (0 = fail fast)")
	runCmd.Flags().String("output-dir", "", "write run artifacts (report, draft, critique, findings, summary) to this directory")
	runCmd.Flags().Bool("archive", false, "record the completed run in the archive database")
	runCmd.Flags().String("archive-dir", "", "archive database directory (default \"archive\")")

	rootCmd.AddCommand(runCmd)
}
