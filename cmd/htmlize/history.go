// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/htmlize/internal/history"
	"github.com/pdiddy/htmlize/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the conversion history (list, search, export)",
	Long: `History queries the local SQLite database that records every conversion:
source and output paths, page title, outcome, and timestamps. Converted
sources are indexed for full-text search.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return runHistoryQuery(cmd, "")
}

// --- search subcommand ---

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over converted documents",
	Long: `Search matches the query against the titles and Markdown sources of
converted documents using SQLite FTS5 syntax. Results are ranked by
relevance.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryQuery(cmd, strings.Join(args, " "))
	},
}

func runHistoryQuery(cmd *cobra.Command, query string) error {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Retrieve(cmd.Context(), queryOptsFromFlags(cmd, query))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatHistoryOutput(w io.Writer, results []types.Conversion, jsonOutput bool) error {
	if jsonOutput {
		if results == nil {
			results = []types.Conversion{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No conversions found.")
		return nil
	}

	fmt.Fprintf(w, "%-9s  %-40s  %-30s  %s\n", "Status", "Source", "Title", "Converted")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range results {
		converted := ""
		if !r.ConvertedAt.IsZero() {
			converted = r.ConvertedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%-9s  %-40s  %-30s  %s\n",
			r.Status, truncate(r.SourcePath, 40), truncate(r.Title, 30), converted)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

// truncate shortens s to n runes, keeping the tail for paths.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return "..." + string(runes[len(runes)-(n-3):])
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion history to YAML or JSON",
	Long: `Export writes the full history (or the subset matching --status) to
export.yaml or export.json inside the history directory.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, "")

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, query string) history.QueryOptions {
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	return history.QueryOptions{
		Query:      query,
		Status:     types.ConversionStatus(status),
		MaxResults: limit,
	}
}

func init() {
	for _, c := range []*cobra.Command{historyListCmd, historySearchCmd} {
		c.Flags().String("status", "", "filter by status: converted or failed")
		c.Flags().Int("limit", 0, "maximum results (0 = use default)")
		c.Flags().Bool("json", false, "output results as JSON")
	}

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("status", "", "filter by status for partial export")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
