// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether ROBOT can run on this machine",
	Long: `Doctor probes the environment: the java launcher must be on the PATH
and answer --help, the robot.jar must resolve to a regular file
(downloading it if missing), and ROBOT itself must answer --help.
The first failing check is reported on stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		tool, err := newTool(cfg)
		if err != nil {
			return err
		}

		if !tool.Available(context.Background()) {
			return fmt.Errorf("robot is not available")
		}
		fmt.Println("robot is available")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
