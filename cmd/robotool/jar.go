// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var jarCmd = &cobra.Command{
	Use:   "jar",
	Short: "Print the local path of the robot.jar, downloading it if needed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		tool, err := newTool(cfg)
		if err != nil {
			return err
		}

		path, err := tool.JarPath(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jarCmd)
}
