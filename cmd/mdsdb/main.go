// Package main is the entry point for the mdsdb command-line driver.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ASHISH26940/mdsdb/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

// --- Global Command Variables ---
var (
	configFile string
	logLevel   string
	verify     bool
	metrics    bool
	output     string

	rootCmd = &cobra.Command{
		Use:   "mdsdb",
		Short: "An in-memory index of priced, tagged items",
		Long: `mdsdb keeps items ordered by id together with a tag -> price index
and answers min/max/range price queries by tag.`,
		SilenceUsage: true,
	}

	runCmd = &cobra.Command{
		Use:   "run [script]",
		Short: "Apply a newline-delimited JSON script of operations and print the checksum",
		Args:  cobra.ExactArgs(1),
		RunE:  runScriptCommand,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
)

func init() {
	runCmd.Flags().StringVar(&configFile, "config", "", "Path to a TOML config file")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (overrides config)")
	runCmd.Flags().BoolVar(&verify, "verify", false, "Check tag index consistency after the run")
	runCmd.Flags().BoolVar(&metrics, "metrics", false, "Print Prometheus metrics after the run")
	runCmd.Flags().StringVar(&output, "output", "", "Write one JSON result record per operation to this file")

	rootCmd.AddCommand(runCmd, versionCmd)
}

// loadConfig merges the config file with any flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.New()
	if configFile != "" {
		if err := cfg.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("verify") {
		cfg.Verify = verify
	}
	if flags.Changed("metrics") {
		cfg.Metrics = metrics
	}
	if flags.Changed("output") {
		cfg.Output = output
	}
	return cfg, nil
}

func runScriptCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return runScript(cmd.Context(), cfg, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
