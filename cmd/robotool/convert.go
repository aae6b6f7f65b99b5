// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/robotool/pkg/robot"
)

var convertCmd = &cobra.Command{
	Use:   "convert INPUT [-- ROBOT_ARGS...]",
	Short: "Convert an ontology to another format with ROBOT",
	Long: `Convert runs a ROBOT pipeline over the input ontology: optional merge,
optional reasoning, then conversion to the format implied by the output
extension (or --format). The input may be a local file or a remote IRI;
remote inputs are detected by protocol prefix and fetched by ROBOT itself.

Arguments after "--" are passed to ROBOT verbatim, in the given order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	var extras []string
	if i := cmd.ArgsLenAtDash(); i >= 0 {
		extras = args[i:]
		args = args[:i]
	}
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one input, got %d", len(args))
	}

	output, _ := cmd.Flags().GetString("output")
	merge, _ := cmd.Flags().GetBool("merge")
	reason, _ := cmd.Flags().GetBool("reason")
	format, _ := cmd.Flags().GetString("format")
	check, _ := cmd.Flags().GetBool("check")
	debug, _ := cmd.Flags().GetBool("debug")
	inputFlag, _ := cmd.Flags().GetString("input-flag")

	req := robot.ConvertRequest{
		Input:     args[0],
		Output:    output,
		Merge:     merge,
		Reason:    reason,
		Format:    format,
		SkipCheck: !check,
		ExtraArgs: extras,
		Debug:     debug,
	}
	switch inputFlag {
	case "":
	case "local":
		req.InputFlag = robot.FlagLocal
	case "remote":
		req.InputFlag = robot.FlagRemote
	default:
		return fmt.Errorf("unsupported input flag %q: use local or remote", inputFlag)
	}

	cfg := loadConfig(cmd)
	tool, err := newTool(cfg)
	if err != nil {
		return err
	}

	tokens := robot.ConvertArgs(req)
	started := time.Now()
	out, err := tool.Run(context.Background(), tokens)
	recordInvocation(cfg, started, tokens, err)
	if err != nil {
		return err
	}

	if out != "" {
		fmt.Print(out)
	}
	fmt.Fprintf(os.Stderr, "Converted %s -> %s\n", req.Input, req.Output)
	return nil
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "destination path for the converted ontology")
	convertCmd.Flags().Bool("merge", false, "merge all input graphs before converting")
	convertCmd.Flags().Bool("reason", false, "run the reasoner before converting")
	convertCmd.Flags().String("format", "", "explicit output format (default: inferred from the output extension)")
	convertCmd.Flags().Bool("check", true, "enforce OBO document structure checks")
	convertCmd.Flags().Bool("debug", false, "run ROBOT with -vvv verbosity")
	convertCmd.Flags().String("input-flag", "", "force input handling: local or remote (default: inferred)")
	_ = convertCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(convertCmd)
}
