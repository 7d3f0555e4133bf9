package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/abe-tools/gutachten-extractor/internal/config"
	"github.com/abe-tools/gutachten-extractor/internal/gutachten"
	"github.com/abe-tools/gutachten-extractor/internal/store"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// report is the JSON document written to stdout after a run.
type report struct {
	Path          string                      `json:"path"`
	Strategy      string                      `json:"strategy"`
	TableCount    int                         `json:"table_count"`
	Codes         []string                    `json:"codes"`
	VehicleInfo   gutachten.VehicleInfo       `json:"vehicle_info,omitempty"`
	WheelTireInfo gutachten.WheelTireInfo     `json:"wheel_tire_info,omitempty"`
	Assessment    gutachten.FreedomAssessment `json:"assessment"`
	ExportedFiles []string                    `json:"exported_files,omitempty"`
	Warnings      []string                    `json:"warnings,omitempty"`
}

// setupLogging configures the slog default logger from the configured level.
// The JSON report goes to stdout, so logs always go to stderr.
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log.SetOutput(os.Stderr)
}

func main() {
	// Handle version flag early
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			os.Exit(0)
		}
	}

	// Load configuration from flags first
	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		slog.Debug("starting", "config", cfg.String())
	}

	codeStore, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatalf("Failed to open code store: %v", err)
	}
	defer codeStore.Close()

	profile := gutachten.ProfilePermissive
	if cfg.StrictValidation {
		profile = gutachten.ProfileStrict
	}
	storage := gutachten.NewExportStorage(cfg.ExportDir, cfg.CleanupDelay)
	service := gutachten.NewService(cfg.MaxFileSize, profile, codeStore, storage)

	result, err := service.ProcessFile(gutachten.ProcessRequest{
		Path:   cfg.InputPath,
		Export: true,
	})
	if err != nil && result == nil {
		log.Fatalf("Extraction failed: %v", err)
	}
	if err != nil {
		// extraction succeeded but persistence did not; report and continue
		slog.Warn("code store update failed", "error", err)
	}

	if err := writeReport(result); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
}

func writeReport(result *gutachten.ExtractResult) error {
	rep := report{
		Path:          result.Path,
		Strategy:      result.Strategy,
		TableCount:    len(result.Tables),
		Codes:         result.Codes,
		VehicleInfo:   result.VehicleInfo,
		WheelTireInfo: result.WheelTireInfo,
		Assessment:    result.Assessment,
		ExportedFiles: result.ExportedFiles,
		Warnings:      result.Warnings,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Gutachten Extractor\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
