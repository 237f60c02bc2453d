/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: scan.go
Description: Scan command implementation for Akaylee Sentinel. Builds the scan
configuration, wires the loader, detector, and result writer into the engine, runs one
distributed scan, and prints the ranked tally summary.
*/

package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/kleascm/akaylee-sentinel/pkg/core"
	"github.com/kleascm/akaylee-sentinel/pkg/detect"
	"github.com/kleascm/akaylee-sentinel/pkg/loader"
	"github.com/kleascm/akaylee-sentinel/pkg/logging"
	"github.com/kleascm/akaylee-sentinel/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// topListSize caps how many ranked IPs the console summary prints
const topListSize = 10

// RunScan executes one distributed telemetry scan
func RunScan(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Akaylee Sentinel - Starting Telemetry Scan")
	fmt.Println("=============================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	// Create scan configuration
	config := createScanConfig()

	// Perform dry run if requested
	if viper.GetBool("dry_run") {
		return performDryRun(config)
	}

	// Validate configuration
	if err := validateScanConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Create the run logger
	runLogger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevel(config.LogLevel),
		Format:    logFormatFromConfig(),
		OutputDir: config.LogDir,
		MaxFiles:  viper.GetInt("log_max_files"),
		MaxSize:   viper.GetInt64("log_max_size"),
		Timestamp: true,
		Caller:    false,
		Colors:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer runLogger.Close()

	// Create scan engine and wire components
	engine := core.NewEngine()
	engine.SetLogger(runLogger.GetLogger())
	engine.SetLoader(loader.New())
	engine.SetDetector(detect.NewPartitionScanner(runLogger.GetLogger()))
	engine.SetWriter(report.NewArtifactWriter(config.OutputDir))

	// Initialize engine
	if err := engine.Initialize(config); err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	// Run the scan
	result, artifactPath, err := engine.Run()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	printScanSummary(engine, result, artifactPath)

	fmt.Println("\n✨ Scan completed!")
	return nil
}

// createScanConfig builds the scan configuration from viper
func createScanConfig() *core.ScanConfig {
	return &core.ScanConfig{
		InputPath: viper.GetString("input_path"),
		Workers:   viper.GetInt("workers"),
		OutputDir: viper.GetString("output_dir"),
		LogLevel:  viper.GetString("log_level"),
		LogDir:    viper.GetString("log_dir"),
		JSONLogs:  viper.GetBool("json_logs"),
	}
}

// logFormatFromConfig maps the configured format flags to a logging format
func logFormatFromConfig() logging.LogFormat {
	if viper.GetBool("json_logs") {
		return logging.LogFormatJSON
	}
	switch viper.GetString("log_format") {
	case "json":
		return logging.LogFormatJSON
	case "text":
		return logging.LogFormatText
	default:
		return logging.LogFormatCustom
	}
}

// validateScanConfig validates the scan configuration
func validateScanConfig(config *core.ScanConfig) error {
	if config.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if _, err := os.Stat(config.InputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", config.InputPath)
	}
	if config.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if config.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	// Reject unknown extensions before any partitioning happens
	if _, err := loader.FormatForPath(config.InputPath); err != nil {
		return err
	}
	return nil
}

// performDryRun validates the configuration and exits without scanning
func performDryRun(config *core.ScanConfig) error {
	fmt.Println("🧪 Dry run: validating configuration")

	if err := validateScanConfig(config); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("output directory not creatable: %w", err)
	}

	format, _ := loader.FormatForPath(config.InputPath)
	fmt.Printf("  input:   %s (%s)\n", config.InputPath, format)
	fmt.Printf("  workers: %d (0 = auto-detect)\n", config.Workers)
	fmt.Printf("  output:  %s\n", config.OutputDir)
	fmt.Println("\n✅ Configuration valid")
	return nil
}

// printScanSummary prints the final statistics and the ranked tally
func printScanSummary(engine *core.Engine, result *core.AnalysisResult, artifactPath string) {
	stats := engine.GetStats()

	fmt.Println("\n📊 Scan Summary")
	fmt.Println("===============")
	fmt.Printf("Records loaded:     %d\n", stats.RecordsLoaded)
	fmt.Printf("Partitions scanned: %d (tabular: %d, free-form: %d, fallbacks: %d)\n",
		stats.PartitionsScanned, stats.TabularPartitions, stats.FreeFormPartitions, stats.FallbackRecoveries)
	fmt.Printf("Suspicious IPs:     %d\n", stats.SuspiciousIPs)
	fmt.Printf("Artifact:           %s\n", artifactPath)

	if result.IsSentinel() {
		fmt.Printf("\n%s\n", result.Message)
		return
	}

	type entry struct {
		ip    string
		count int
	}
	ranked := make([]entry, 0, len(result.Tally))
	for ip, count := range result.Tally {
		ranked = append(ranked, entry{ip: ip, count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].ip < ranked[j].ip
	})

	fmt.Println("\nTop suspicious IPs:")
	for i, e := range ranked {
		if i >= topListSize {
			fmt.Printf("  ... and %d more\n", len(ranked)-topListSize)
			break
		}
		fmt.Printf("  %-18s %d\n", e.ip, e.count)
	}
}
