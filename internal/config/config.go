package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultStorePath    = "gutachten.db"
	DefaultExportDir    = "exports"
	DefaultLogLevel     = "info"
	DefaultMaxFileSize  = 100 * 1024 * 1024 // 100MB
	DefaultCleanupDelay = 5 * time.Minute

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the Gutachten extractor
type Config struct {
	// Input configuration
	InputPath string

	// Persistence configuration
	StorePath string
	ExportDir string

	// Extraction configuration
	StrictValidation bool
	CleanupDelay     time.Duration

	// Application configuration
	Version     string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		StorePath:        DefaultStorePath,
		ExportDir:        DefaultExportDir,
		StrictValidation: false,
		CleanupDelay:     DefaultCleanupDelay,
		Version:          "1.0.0",
		LogLevel:         DefaultLogLevel,
		MaxFileSize:      DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// The input PDF may also be given as the sole positional argument
	if cfg.InputPath == "" && pflag.NArg() > 0 {
		cfg.InputPath = pflag.Arg(0)
	}

	// Expand paths if needed
	if cfg.InputPath != "" {
		if expandedPath, err := filepath.Abs(cfg.InputPath); err == nil {
			cfg.InputPath = expandedPath
		}
	}
	if cfg.ExportDir != "" {
		if expandedPath, err := filepath.Abs(cfg.ExportDir); err == nil {
			cfg.ExportDir = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("GUTACHTEN")
	viper.AutomaticEnv()

	viper.SetDefault("input", cfg.InputPath)
	viper.SetDefault("store", cfg.StorePath)
	viper.SetDefault("exportdir", cfg.ExportDir)
	viper.SetDefault("strict", cfg.StrictValidation)
	viper.SetDefault("cleanupdelay", cfg.CleanupDelay)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("input", cfg.InputPath, "Path of the Gutachten PDF to analyze")
	pflag.String("store", cfg.StorePath, "Path of the condition-code SQLite database")
	pflag.String("exportdir", cfg.ExportDir, "Directory for exported CSV tables")
	pflag.Bool("strict", cfg.StrictValidation, "Enable strict table validation")
	pflag.Duration("cleanupdelay", cfg.CleanupDelay, "Delay before exported files are removed")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("input", pflag.Lookup("input"))
	_ = viper.BindPFlag("store", pflag.Lookup("store"))
	_ = viper.BindPFlag("exportdir", pflag.Lookup("exportdir"))
	_ = viper.BindPFlag("strict", pflag.Lookup("strict"))
	_ = viper.BindPFlag("cleanupdelay", pflag.Lookup("cleanupdelay"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nGutachten Extractor - table and condition-code extraction for vehicle inspection PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s gutachten.pdf                            # analyze with defaults\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --input=gutachten.pdf --strict           # strict table validation\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s gutachten.pdf --exportdir=/tmp/exports   # custom export directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  GUTACHTEN_INPUT        Input PDF path\n")
		fmt.Fprintf(os.Stderr, "  GUTACHTEN_STORE        Condition-code database path\n")
		fmt.Fprintf(os.Stderr, "  GUTACHTEN_EXPORTDIR    CSV export directory\n")
		fmt.Fprintf(os.Stderr, "  GUTACHTEN_STRICT       Strict table validation\n")
		fmt.Fprintf(os.Stderr, "  GUTACHTEN_CLEANUPDELAY Export cleanup delay\n")
		fmt.Fprintf(os.Stderr, "  GUTACHTEN_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  GUTACHTEN_MAXFILESIZE  Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.InputPath = viper.GetString("input")
	cfg.StorePath = viper.GetString("store")
	cfg.ExportDir = viper.GetString("exportdir")
	cfg.StrictValidation = viper.GetBool("strict")
	cfg.CleanupDelay = viper.GetDuration("cleanupdelay")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input PDF path cannot be empty")
	}

	if c.StorePath == "" {
		return errors.New("store path cannot be empty")
	}

	// Check if export directory exists, create if it doesn't
	if c.ExportDir == "" {
		return errors.New("export directory cannot be empty")
	}
	if _, err := os.Stat(c.ExportDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.ExportDir, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create export directory %s: %w", c.ExportDir, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access export directory %s: %w", c.ExportDir, err)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.CleanupDelay < 0 {
		return errors.New("cleanup delay cannot be negative")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{InputPath: %s, StorePath: %s, ExportDir: %s, Strict: %t, LogLevel: %s, MaxFileSize: %d}",
		c.InputPath, c.StorePath, c.ExportDir, c.StrictValidation, c.LogLevel, c.MaxFileSize)
}
