// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reservation-engine/internal/history"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect logged extraction attempts (list, stats, export)",
	Long: `History reads the SQLite log written by extract --record and
serve --record. Use it to see which reservation types fall back to AI
extraction most often.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent attempts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	attempts, err := store.List(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryList(cmd.OutOrStdout(), attempts, jsonOutput)
}

func formatHistoryList(w io.Writer, attempts []history.Attempt, jsonOutput bool) error {
	if jsonOutput {
		if attempts == nil {
			attempts = []history.Attempt{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(attempts)
	}

	if len(attempts) == 0 {
		fmt.Fprintln(w, "No attempts recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-12s  %-10s  %-6s  %-5s  %s\n",
		"Time", "Type", "Method", "Score", "Src", "Error")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, a := range attempts {
		errText := a.Error
		if len(errText) > 30 {
			errText = errText[:27] + "..."
		}
		fmt.Fprintf(w, "%-20s  %-12s  %-10s  %-6.2f  %-5s  %s\n",
			a.CreatedAt.Local().Format("2006-01-02 15:04:05"), a.Type, a.Method, a.Completeness, a.Source, errText)
	}
	fmt.Fprintf(w, "\n%d attempts\n", len(attempts))
	return nil
}

// --- stats subcommand ---

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show hit rate and average completeness per reservation type",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(cmd.Context())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryStats(cmd.OutOrStdout(), stats, jsonOutput)
}

func formatHistoryStats(w io.Writer, stats []history.TypeStats, jsonOutput bool) error {
	if jsonOutput {
		if stats == nil {
			stats = []history.TypeStats{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	if len(stats) == 0 {
		fmt.Fprintln(w, "No attempts recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-14s  %8s  %8s  %8s  %9s  %8s  %s\n",
		"Type", "Attempts", "Found", "Hit rate", "JSON-LD", "Micro", "Avg score")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, s := range stats {
		fmt.Fprintf(w, "%-14s  %8d  %8d  %7.1f%%  %9d  %8d  %.2f\n",
			s.Type, s.Attempts, s.Succeeded, 100*s.HitRate(), s.JSONLD, s.Microdata, s.AvgCompleteness)
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write attempts to stdout as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		return store.ExportYAML(cmd.Context(), cmd.OutOrStdout(), opts)
	case "json":
		return store.ExportJSON(cmd.Context(), cmd.OutOrStdout(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// --- shared helpers ---

func listOptsFromFlags(cmd *cobra.Command) (history.ListOptions, error) {
	typeFlag, _ := cmd.Flags().GetString("type")
	failures, _ := cmd.Flags().GetBool("failures")
	since, _ := cmd.Flags().GetDuration("since")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := history.ListOptions{
		FailuresOnly: failures,
		MaxResults:   limit,
	}
	if typeFlag != "" {
		rt, ok := types.ParseReservationType(typeFlag)
		if !ok {
			return opts, fmt.Errorf("unsupported reservation type %q: use one of %s", typeFlag, typeList())
		}
		opts.Type = rt
	}
	if since > 0 {
		opts.Since = time.Now().Add(-since)
	}
	return opts, nil
}

func init() {
	historyCmd.PersistentFlags().String("db", "", "history database path (default data/history.db)")
	_ = viper.BindPFlag("history.db_path", historyCmd.PersistentFlags().Lookup("db"))

	for _, c := range []*cobra.Command{historyListCmd, historyExportCmd} {
		c.Flags().String("type", "", "filter by reservation type")
		c.Flags().Bool("failures", false, "only attempts that found nothing")
		c.Flags().Duration("since", 0, "only attempts newer than this, e.g. 24h")
		c.Flags().Int("limit", 0, "maximum attempts (0 = default)")
	}
	historyListCmd.Flags().Bool("json", false, "output as JSON")
	historyStatsCmd.Flags().Bool("json", false, "output as JSON")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
