/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for Akaylee Sentinel. Provides command-line
options and configuration management for running distributed suspicious-telemetry scans
with structured logging.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/akaylee-sentinel/cmd/sentinel/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool

	// Input configuration
	inputPath string

	// Execution configuration
	workers int

	// Output configuration
	outputDir string

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64

	dryRun bool
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "sentinel",
		Short: "Akaylee Sentinel - Distributed suspicious-telemetry scanner",
		Long: `Akaylee Sentinel ingests heterogeneous security telemetry - free-form
authentication logs, CSV and Excel exports, JSON dumps - and produces a ranked tally
of source IP addresses associated with suspicious or attack-labeled activity. The scan
is distributed across a fixed pool of worker ranks and the partial results are merged
deterministically.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))

	// Add scan command
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a telemetry file for suspicious source IPs",
		Long: `Scan a telemetry file for suspicious source IPs. The input is loaded once,
split round-robin across the worker ranks, scanned in parallel, and the merged tally is
written as a JSON artifact for the presentation layer to consume.`,
		RunE: commands.RunScan,
	}

	// Add scan command flags
	scanCmd.Flags().StringVar(&inputPath, "input", "", "Path to telemetry file (required)")
	scanCmd.Flags().IntVar(&workers, "workers", 0, "Number of worker ranks (0 = auto-detect)")
	scanCmd.Flags().StringVar(&outputDir, "output", "./results", "Directory for the result artifact")
	scanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate configuration and exit without scanning")

	// Mark required flags
	scanCmd.MarkFlagRequired("input")

	// Bind flags to viper
	viper.BindPFlag("input_path", scanCmd.Flags().Lookup("input"))
	viper.BindPFlag("workers", scanCmd.Flags().Lookup("workers"))
	viper.BindPFlag("output_dir", scanCmd.Flags().Lookup("output"))
	viper.BindPFlag("dry_run", scanCmd.Flags().Lookup("dry-run"))

	rootCmd.AddCommand(scanCmd)

	// Add formats command listing recognized input kinds
	rootCmd.AddCommand(&cobra.Command{
		Use:   "formats",
		Short: "List recognized input formats",
		Long: `List the file extensions Akaylee Sentinel recognizes and the loader each one
is dispatched to. Any other extension is rejected before partitioning.`,
		Run: commands.ListFormats,
	})

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
