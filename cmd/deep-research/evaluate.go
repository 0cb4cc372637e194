// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/evaluate"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [file]",
	Short: "Score a findings file against the source-quality policy",
	Long: `Evaluate extracts citation URLs from the given file (or stdin when the
argument is "-") and scores them against the preferred-domain allow-list.
The verdict passes only when more than half the URLs come from preferred
domains; text with no URLs scores 0.0 and fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading findings: %w", err)
	}

	verdict := evaluate.Evaluate(string(data))

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(verdict)
	}

	fmt.Printf("%s | %.1f%% preferred domains (%d/%d URLs)\n",
		verdict.Status, verdict.Score*100, verdict.TrustedURLs, verdict.TotalURLs)

	if showURLs, _ := cmd.Flags().GetBool("urls"); showURLs {
		for _, u := range evaluate.ExtractURLs(string(data)) {
			marker := " "
			if evaluate.Trusted(u) {
				marker = "*"
			}
			fmt.Printf("  %s %s\n", marker, u)
		}
	}
	return nil
}

func init() {
	evaluateCmd.Flags().Bool("json", false, "emit the verdict as JSON")
	evaluateCmd.Flags().Bool("urls", false, "list extracted URLs, preferred ones marked with *")

	rootCmd.AddCommand(evaluateCmd)
}
