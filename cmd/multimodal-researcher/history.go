// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/multimodal-researcher/internal/history"
	"github.com/pdiddy/multimodal-researcher/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous runs",
	Long: `History lists runs recorded in <output-dir>/history.db, newest first.
Use --yaml to export the list, or "history show <id>" for one run.`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Bool("yaml", false, "output as YAML")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	asYAML, _ := cmd.Flags().GetBool("yaml")

	store, err := history.Open(viper.GetString("output_dir"))
	if err != nil {
		return err
	}
	defer store.Close()

	if asYAML {
		return store.ExportYAML(cmd.Context(), os.Stdout, limit)
	}

	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	formatHistory(os.Stdout, runs)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := history.Open(viper.GetString("output_dir"))
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func formatHistory(w io.Writer, runs []types.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-9s  %-20s  %s\n", "ID", "Status", "Started", "Topic")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range runs {
		topic := []rune(r.Topic)
		if len(topic) > 30 {
			topic = append(topic[:27], []rune("...")...)
		}
		fmt.Fprintf(w, "%-36s  %-9s  %-20s  %s\n",
			r.ID, r.Status, r.StartedAt.Local().Format("2006-01-02 15:04:05"), string(topic))
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}
