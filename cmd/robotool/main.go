// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the robotool CLI, a thin layer
// over the ROBOT ontology tool: jar acquisition, pipeline assembly,
// invocation, and history.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/robotool/internal/jarcache"
	"github.com/pdiddy/robotool/internal/ledger"
	"github.com/pdiddy/robotool/pkg/robot"
	"github.com/pdiddy/robotool/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the robotool CLI.
var rootCmd = &cobra.Command{
	Use:   "robotool",
	Short: "Convert ontologies with the ROBOT tool",
	Long: `robotool wraps the ROBOT ontology tool (https://robot.obolibrary.org).
It downloads and caches the robot.jar release, assembles convert pipelines
(merge, reason, convert), runs them through the java launcher, and records
each invocation in a local history ledger.

robotool performs no ontology processing itself; ROBOT does all the work.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetOutput(os.Stderr)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./robotool.yaml or ~/.config/robotool/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().String("cache-dir", "", "jar cache directory (default: user cache dir + /robotool)")
	rootCmd.PersistentFlags().String("robot-version", "", "ROBOT release to use (default "+jarcache.DefaultVersion+")")
	rootCmd.PersistentFlags().String("java", "", "java launcher binary (default \"java\")")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("robotool")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "robotool"))
		}
	}

	viper.SetEnvPrefix("ROBOTOOL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges config file values and persistent flags into a Config.
// Flags win over the config file.
func loadConfig(cmd *cobra.Command) types.Config {
	var cfg types.Config
	cfg.Cache.Dir = viper.GetString("cache.dir")
	cfg.Cache.Version = viper.GetString("cache.version")
	cfg.Cache.Timeout = viper.GetDuration("cache.timeout")
	cfg.Cache.UserAgent = viper.GetString("cache.user_agent")
	cfg.Cache.MaxRetries = viper.GetInt("cache.max_retries")
	cfg.Runner.Java = viper.GetString("runner.java")
	cfg.Runner.PreviewLength = viper.GetInt("runner.preview_length")
	cfg.History.DBPath = viper.GetString("history.db_path")
	cfg.History.MaxResults = viper.GetInt("history.max_results")

	if v, _ := cmd.Flags().GetString("cache-dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v, _ := cmd.Flags().GetString("robot-version"); v != "" {
		cfg.Cache.Version = v
	}
	if v, _ := cmd.Flags().GetString("java"); v != "" {
		cfg.Runner.Java = v
	}

	if cfg.History.DBPath == "" {
		if dir, err := jarcache.DefaultDir(); err == nil {
			cfg.History.DBPath = filepath.Join(dir, "history.db")
		}
	}
	return cfg
}

// newTool builds the ROBOT tool from config.
func newTool(cfg types.Config) (*robot.Tool, error) {
	cache, err := jarcache.New(cfg.Cache, logrus.StandardLogger())
	if err != nil {
		return nil, err
	}

	opts := []robot.Option{robot.WithVersion(cfg.Cache.Version)}
	if cfg.Runner.Java != "" {
		opts = append(opts, robot.WithJava(cfg.Runner.Java))
	}
	if cfg.Runner.PreviewLength > 0 {
		opts = append(opts, robot.WithPreviewLength(cfg.Runner.PreviewLength))
	}
	return robot.New(cache, opts...), nil
}

// recordInvocation appends the run to the history ledger. Best effort:
// ledger problems are logged, never returned.
func recordInvocation(cfg types.Config, started time.Time, tokens []string, runErr error) {
	if cfg.History.DBPath == "" {
		return
	}
	store, err := ledger.Open(cfg.History)
	if err != nil {
		logrus.WithError(err).Warn("opening history ledger")
		return
	}
	defer store.Close()

	inv := ledger.Invocation{
		StartedAt: started,
		Duration:  time.Since(started),
		Command:   tokens,
		Succeeded: runErr == nil,
	}
	var toolErr *robot.ToolError
	if errors.As(runErr, &toolErr) {
		inv.ExitCode = toolErr.ReturnCode
	} else if runErr != nil {
		// Launch or resolution failure: no exit code to report.
		inv.ExitCode = -1
	}

	if err := store.Record(inv); err != nil {
		logrus.WithError(err).Warn("recording invocation")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
