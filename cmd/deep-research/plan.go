// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/gateway"
	"github.com/pdiddy/deep-research/internal/plan"
	"github.com/pdiddy/deep-research/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan [topic]",
	Short: "Decompose a topic into research steps without running them",
	Long: `Plan runs only the decomposition phase and prints the resulting steps,
one per line. Useful for inspecting how a topic will be broken down before
committing to a full run. A malformed model response degrades to a
single-step plan containing the topic verbatim.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	topic := args[0]

	model, _ := cmd.Flags().GetString("planner-model")
	if model == "" {
		model = modelsConfig(cmd).Planner
	}
	if model == "" {
		model = types.DefaultModels().Planner
	}

	gw := gateway.NewRegistry(gatewayConfig())
	if len(gw.Providers()) == 0 {
		return fmt.Errorf("no model providers configured: add openai-api-key or anthropic-api-key to .secrets/")
	}

	steps, err := plan.New(gw, model).Plan(cmd.Context(), topic)
	if err != nil {
		return err
	}

	for i, step := range steps {
		fmt.Printf("%d. %s\n", i+1, step)
	}
	return nil
}

func init() {
	planCmd.Flags().String("planner-model", "", "model for topic decomposition (default openai:o4-mini)")

	rootCmd.AddCommand(planCmd)
}
