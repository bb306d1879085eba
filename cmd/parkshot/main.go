// parkshot takes screenshots of isometric parks.
//
// Usage:
//
//	parkshot screenshot <file> <output> ... - Render one image headlessly
//	parkshot view <file>                    - Explore a park and take screenshots
//	parkshot serve <file>                   - Serve the viewer over SSH
//	parkshot history                        - Show recent captures
//	parkshot currencies                     - List the currency table
//	parkshot backends                       - List the park file formats
//
// Global flags:
//
//	--config <path>     - Use a specific configuration file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkshot/internal/capture"
	"github.com/vovakirdan/parkshot/internal/config"
	"github.com/vovakirdan/parkshot/internal/imageio"
	"github.com/vovakirdan/parkshot/internal/storage"

	// Import backends to register them
	_ "github.com/vovakirdan/parkshot/internal/engine/sketch"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "parkshot",
	Short: "parkshot - Screenshots of isometric parks",
	Long: `parkshot renders park files to BMP and PNG images, either headlessly
from the command line or interactively from a terminal viewer.

Available commands:
  screenshot - Render one image of a park
  view       - Explore a park and take screenshots
  serve      - Start an SSH server for remote viewing
  history    - Show recent captures
  currencies - List supported currencies
  backends   - List supported park file formats

Examples:
  parkshot screenshot park.park.yaml out.png 640 480
  parkshot screenshot park.park.yaml map.png giant 1 0
  parkshot view park.park.yaml
  parkshot history --limit 5`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(screenshotCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(currenciesCmd)
	rootCmd.AddCommand(backendsCmd)
}

// fatalf prints an error and exits with status 1.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
		if err := cfg.Validate(); err != nil {
			fatalf("%v", err)
		}
	}
	return cfg
}

// newLogger creates the process logger at the configured level.
func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "parkshot",
	})
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// openHistory opens the capture history, or returns nil when it is
// disabled or unavailable.
func openHistory(cfg config.Config, logger *log.Logger) *storage.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := storage.Open(cfg.History.DBPath)
	if err != nil {
		logger.Warn("could not open capture history", "error", err)
		return nil
	}
	return store
}

// captureOptions builds capturer options from the configuration.
func captureOptions(cfg config.Config, logger *log.Logger, store *storage.Store) (capture.Options, error) {
	dir, err := config.ExpandHome(cfg.Screenshot.Directory)
	if err != nil {
		return capture.Options{}, err
	}
	// Validated on load
	format, _ := imageio.ParseFormat(cfg.Screenshot.Format)
	compression, _ := imageio.ParseCompression(cfg.Screenshot.PNGCompression)

	opts := capture.Options{
		Directory:      dir,
		Format:         format,
		PNGCompression: compression,
		Logger:         logger,
	}
	if store != nil {
		opts.Recorder = store
	}
	return opts, nil
}
