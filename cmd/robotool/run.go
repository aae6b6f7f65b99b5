// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run -- ARGS...",
	Short: "Run a raw ROBOT command",
	Long: `Run passes the given argument tokens to ROBOT unchanged, as
"java -jar robot.jar ARGS...", and prints ROBOT's standard output.
Useful for ROBOT subcommands that convert does not cover.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	tool, err := newTool(cfg)
	if err != nil {
		return err
	}

	started := time.Now()
	out, err := tool.Run(context.Background(), args)
	recordInvocation(cfg, started, args, err)
	if err != nil {
		return err
	}

	if out != "" {
		fmt.Print(out)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
}
