// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/robotool/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent ROBOT invocations",
	Long: `History reads the local invocation ledger and lists recent ROBOT
runs with their start time, duration, and exit status. Every convert
and run invocation is recorded automatically.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if cfg.History.DBPath == "" {
		return fmt.Errorf("history ledger is disabled: no database path configured")
	}

	store, err := ledger.Open(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	invocations, err := store.Recent(limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(invocations)
	}

	if len(invocations) == 0 {
		fmt.Println("No invocations recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-6s  %-9s  %s\n", "Started", "Exit", "Duration", "Command")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, inv := range invocations {
		command := strings.Join(inv.Command, " ")
		if len(command) > 50 {
			command = command[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-6d  %-9s  %s\n",
			inv.StartedAt.Local().Format("2006-01-02 15:04:05"),
			inv.ExitCode,
			inv.Duration.Round(time.Millisecond).String(),
			command)
	}
	fmt.Fprintf(os.Stdout, "\n%d invocations\n", len(invocations))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum invocations to list (0 = use default)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}
