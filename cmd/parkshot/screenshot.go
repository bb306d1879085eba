package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkshot/internal/headless"
)

// Exit statuses of the screenshot command.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot <file> <output_image> <width> <height> [<x> <y> <zoom> <rotation>]",
	Short: "Render one image of a park",
	Long: `Render a single PNG of a park without opening a window.

Forms:
  screenshot <file> <output_image> <width> <height>
      Use the park's saved view. A width or height of 0 sizes the image
      to fit the whole map.
  screenshot <file> <output_image> <width> <height> <x> <y> <zoom> <rotation>
      Centre on world point (x, y). An x or y starting with 'c' means the
      centre of the map. Zoom is 0-3; rotation is reduced to 0-3.
  screenshot <file> <output_image> giant <zoom> <rotation>
      Render the whole map centred on its middle tile.

Exit status is 0 on success, 1 if the park could not be loaded or the
image could not be written, and 2 for invalid arguments.

Examples:
  parkshot screenshot park.park.yaml out.png 640 480
  parkshot screenshot park.park.yaml out.png 640 480 c c 1 2
  parkshot screenshot park.park.yaml out.png 800 600 1200 -64 0 0
  parkshot screenshot park.park.yaml map.png giant 2 0`,
	Args: cobra.ArbitraryArgs,
	Run:  runScreenshot,
}

func init() {
	// Stop flag parsing at the input file so negative coordinates are
	// taken as arguments
	screenshotCmd.Flags().SetInterspersed(false)
}

func runScreenshot(_ *cobra.Command, args []string) {
	os.Exit(screenshot(args))
}

func screenshot(args []string) int {
	params, err := headless.ParseArgs(args)
	if err != nil {
		fmt.Print(headless.Usage)
		return exitUsage
	}

	cfg := loadConfig()
	logger := newLogger(cfg)
	store := openHistory(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	opts, err := captureOptions(cfg, logger, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	res, err := headless.Run(params, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	fmt.Printf("Screenshot saved to %s (%dx%d)\n", res.Path, res.Width, res.Height)
	return exitOK
}
