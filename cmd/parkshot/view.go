package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/parkshot/internal/engine"
	"github.com/vovakirdan/parkshot/internal/platform/tui"
)

var flagRain bool

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Explore a park and take screenshots",
	Long: `Open a park in the terminal viewer.

Keys:
  arrows/hjkl  pan          +/-     zoom
  r / R        rotate       t       toggle rain
  ctrl+s       screenshot   g       giant screenshot
  ?            more keys    q       quit

Screenshots are written to the configured screenshot directory as
SCR1, SCR2, ... in the configured format. Giant screenshots are PNG.

Examples:
  parkshot view park.park.yaml
  parkshot view park.park.yaml --rain`,
	Args: cobra.ExactArgs(1),
	Run:  runView,
}

func init() {
	viewCmd.Flags().BoolVar(&flagRain, "rain", false, "Start with the rain overlay on")
}

func runView(_ *cobra.Command, args []string) {
	if err := view(args[0]); err != nil {
		fatalf("%v", err)
	}
}

// view runs the viewer on a park. Resources are released before it
// returns, on every path.
func view(path string) error {
	cfg := loadConfig()
	logger := newLogger(cfg)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	e, err := engine.Open(path)
	if err != nil {
		return err
	}
	defer e.Close()
	e.StartPlaying()

	store := openHistory(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	opts, err := captureOptions(cfg, logger, store)
	if err != nil {
		return err
	}

	v, err := tui.NewViewer(e, tui.ViewerOptions{
		Width:           cfg.Viewer.Width,
		Height:          cfg.Viewer.Height,
		CountdownFrames: cfg.Screenshot.CountdownFrames,
		Rain:            flagRain,
		Bell:            os.Stdout,
		Capture:         opts,
	})
	if err != nil {
		return err
	}
	defer v.Close()

	return tui.Run(v, cfg.Viewer.TickRate, width, height)
}
