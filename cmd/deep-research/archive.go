// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/archive"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect archived pipeline runs",
	Long: `Archive lists, shows, and searches runs recorded with "run --archive".
The archive is read here and written by the pipeline; a run in progress
never consults it.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.NewStore(archiveConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		summaries, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("no archived runs")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tSTEPS\tPASSED\tTOPIC")
		for _, rs := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				rs.ID, rs.Started.Format("2006-01-02 15:04"), rs.Steps, rs.Passed, rs.Topic)
		}
		return w.Flush()
	},
}

var archiveShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Print an archived run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.NewStore(archiveConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
			return store.Export(cmd.Context(), args[0], os.Stdout)
		}

		result, err := store.Show(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Topic: %s\n", result.Topic)
		fmt.Printf("Started: %s\n\n", result.Started.Format("2006-01-02 15:04:05"))
		for _, sr := range result.Steps {
			fmt.Printf("%d. %s\n", sr.Index+1, sr.Step)
			fmt.Printf("   source quality: %s | %.1f%% preferred domains\n",
				sr.Verdict.Status, sr.Verdict.Score*100)
		}
		fmt.Printf("\n%s\n", result.Report())
		return nil
	},
}

var archiveSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over archived findings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := archive.NewStore(archiveConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		hits, err := store.Search(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("no matches")
			return nil
		}

		for _, h := range hits {
			fmt.Printf("%s [%s] step %d: %s\n", h.RunID, h.Status, h.StepIndex+1, h.Step)
			fmt.Printf("  %s\n", h.Excerpt)
		}
		return nil
	},
}

func init() {
	archiveCmd.PersistentFlags().String("archive-dir", "", "archive database directory (default \"archive\")")
	archiveShowCmd.Flags().Bool("yaml", false, "dump the full run as YAML")
	archiveSearchCmd.Flags().Int("limit", 0, "maximum number of matches (default 20)")

	archiveCmd.AddCommand(archiveListCmd, archiveShowCmd, archiveSearchCmd)
	rootCmd.AddCommand(archiveCmd)
}
