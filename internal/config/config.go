// Package config provides YAML-based configuration loading for parkshot.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/parkshot/internal/imageio"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete parkshot configuration.
type Config struct {
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Viewer     ViewerConfig     `yaml:"viewer"`
	History    HistoryConfig    `yaml:"history"`
	Log        LogConfig        `yaml:"log"`
}

// ScreenshotConfig controls where and how captures are written.
type ScreenshotConfig struct {
	Format          string `yaml:"format"`           // "bmp" or "png"; standard dumps only
	Directory       string `yaml:"directory"`        // Created on demand; "~" is expanded
	PNGCompression  string `yaml:"png_compression"`  // "default", "none", "best_speed" or "best_compression"
	CountdownFrames int    `yaml:"countdown_frames"` // Frames between ctrl+s and the dump
}

// ViewerConfig sizes the interactive viewer's framebuffer.
type ViewerConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TickRate int `yaml:"tick_rate"` // Frames per second
}

// HistoryConfig controls the capture history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn" or "error"
}

// Validate checks every field that has a fixed domain.
func (c *Config) Validate() error {
	if _, err := imageio.ParseFormat(c.Screenshot.Format); err != nil {
		return fmt.Errorf("%w: screenshot.format: %v", ErrInvalid, err)
	}
	if _, err := imageio.ParseCompression(c.Screenshot.PNGCompression); err != nil {
		return fmt.Errorf("%w: screenshot.png_compression: %v", ErrInvalid, err)
	}
	if strings.TrimSpace(c.Screenshot.Directory) == "" {
		return fmt.Errorf("%w: screenshot.directory is empty", ErrInvalid)
	}
	if c.Screenshot.CountdownFrames < 0 {
		return fmt.Errorf("%w: screenshot.countdown_frames %d is negative", ErrInvalid, c.Screenshot.CountdownFrames)
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("%w: viewer size %dx%d", ErrInvalid, c.Viewer.Width, c.Viewer.Height)
	}
	if c.Viewer.TickRate <= 0 {
		return fmt.Errorf("%w: viewer.tick_rate %d", ErrInvalid, c.Viewer.TickRate)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.DBPath) == "" {
		return fmt.Errorf("%w: history.db_path is empty", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
