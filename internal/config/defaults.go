package config

import (
	_ "embed"
)

//go:embed defaults/parkshot.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Screenshot: ScreenshotConfig{
			Format:          "png",
			Directory:       "~/.parkshot/screenshots",
			PNGCompression:  "default",
			CountdownFrames: 2,
		},
		Viewer: ViewerConfig{
			Width:    640,
			Height:   480,
			TickRate: 30,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  "~/.parkshot/parkshot.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
