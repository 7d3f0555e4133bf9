package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Helper function to reset pflag.CommandLine for testing
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	viper.Reset()
}

// Helper function to set os.Args for testing
func setArgs(args []string) {
	os.Args = args
}

// Helper function to clear environment variables
func clearEnvVars() {
	os.Unsetenv("GUTACHTEN_INPUT")
	os.Unsetenv("GUTACHTEN_STORE")
	os.Unsetenv("GUTACHTEN_EXPORTDIR")
	os.Unsetenv("GUTACHTEN_STRICT")
	os.Unsetenv("GUTACHTEN_CLEANUPDELAY")
	os.Unsetenv("GUTACHTEN_LOGLEVEL")
	os.Unsetenv("GUTACHTEN_MAXFILESIZE")
}

func restoreArgs(t *testing.T) {
	t.Helper()
	originalArgs := os.Args
	t.Cleanup(func() {
		os.Args = originalArgs
		resetFlags()
		clearEnvVars()
	})
}

func TestLoadFromFlags_Defaults(t *testing.T) {
	restoreArgs(t)
	input := filepath.Join(t.TempDir(), "gutachten.pdf")

	setArgs([]string{
		"gutachten-extractor",
		fmt.Sprintf("--input=%s", input),
		fmt.Sprintf("--exportdir=%s", filepath.Join(t.TempDir(), "out")),
	})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	// Verify default values
	if cfg.InputPath != input {
		t.Errorf("LoadFromFlags() InputPath = %v, want %v", cfg.InputPath, input)
	}
	if cfg.StorePath != DefaultStorePath {
		t.Errorf("LoadFromFlags() StorePath = %v, want %v", cfg.StorePath, DefaultStorePath)
	}
	if cfg.StrictValidation {
		t.Errorf("LoadFromFlags() StrictValidation = true, want false")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want %v", cfg.LogLevel, "info")
	}
	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want %v", cfg.MaxFileSize, 100*1024*1024)
	}
	if cfg.CleanupDelay != DefaultCleanupDelay {
		t.Errorf("LoadFromFlags() CleanupDelay = %v, want %v", cfg.CleanupDelay, DefaultCleanupDelay)
	}
}

func TestLoadFromFlags_PositionalInput(t *testing.T) {
	restoreArgs(t)
	input := filepath.Join(t.TempDir(), "gutachten.pdf")

	setArgs([]string{
		"gutachten-extractor",
		fmt.Sprintf("--exportdir=%s", filepath.Join(t.TempDir(), "out")),
		input,
	})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}
	if cfg.InputPath != input {
		t.Errorf("LoadFromFlags() InputPath = %v, want %v", cfg.InputPath, input)
	}
}

func TestLoadFromFlags_CustomFlags(t *testing.T) {
	restoreArgs(t)
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "gutachten.pdf")
	exportDir := filepath.Join(tmpDir, "out")

	setArgs([]string{
		"gutachten-extractor",
		fmt.Sprintf("--input=%s", input),
		fmt.Sprintf("--exportdir=%s", exportDir),
		"--strict",
		"--loglevel=debug",
		"--maxfilesize=1024",
		"--cleanupdelay=30s",
	})
	resetFlags()
	clearEnvVars()

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}

	if cfg.ExportDir != exportDir {
		t.Errorf("LoadFromFlags() ExportDir = %v, want %v", cfg.ExportDir, exportDir)
	}
	if !cfg.StrictValidation {
		t.Errorf("LoadFromFlags() StrictValidation = false, want true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.MaxFileSize != 1024 {
		t.Errorf("LoadFromFlags() MaxFileSize = %v, want 1024", cfg.MaxFileSize)
	}
	if cfg.CleanupDelay != 30*time.Second {
		t.Errorf("LoadFromFlags() CleanupDelay = %v, want 30s", cfg.CleanupDelay)
	}
}

func TestLoadFromFlags_Environment(t *testing.T) {
	restoreArgs(t)
	input := filepath.Join(t.TempDir(), "gutachten.pdf")

	setArgs([]string{"gutachten-extractor"})
	resetFlags()
	clearEnvVars()
	os.Setenv("GUTACHTEN_INPUT", input)
	os.Setenv("GUTACHTEN_EXPORTDIR", filepath.Join(t.TempDir(), "out"))
	os.Setenv("GUTACHTEN_LOGLEVEL", "warn")

	cfg, err := LoadFromFlags()
	if err != nil {
		t.Fatalf("LoadFromFlags() unexpected error: %v", err)
	}
	if cfg.InputPath != input {
		t.Errorf("LoadFromFlags() InputPath = %v, want %v", cfg.InputPath, input)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LoadFromFlags() LogLevel = %v, want warn", cfg.LogLevel)
	}
}

func TestLoadFromFlags_InvalidConfig(t *testing.T) {
	restoreArgs(t)

	// no input path at all
	setArgs([]string{"gutachten-extractor"})
	resetFlags()
	clearEnvVars()

	if _, err := LoadFromFlags(); err == nil {
		t.Errorf("LoadFromFlags() expected error for missing input path")
	}
}
