package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkshot/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Start the parkshot SSH server",
	Long: `Start an SSH server that lets users explore a park remotely.

Each SSH connection gets its own engine and viewer. Screenshots are
written on the server, in a subdirectory of the screenshot directory
named after the SSH user.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.parkshot/host_key

Examples:
  parkshot serve park.park.yaml                 # Listen on :23234
  parkshot serve park.park.yaml --ssh :2222     # Listen on port 2222

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.ExactArgs(1),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, args []string) {
	if err := serve(args[0]); err != nil {
		fatalf("%v", err)
	}
}

// serve runs the SSH server for a park until it is interrupted.
func serve(path string) error {
	cfg := loadConfig()
	logger := newLogger(cfg).WithPrefix("parkshot-ssh")

	store := openHistory(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	opts, err := captureOptions(cfg, logger, store)
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		ParkPath:    path,
		Viewer: tui.ViewerOptions{
			Width:           cfg.Viewer.Width,
			Height:          cfg.Viewer.Height,
			CountdownFrames: cfg.Screenshot.CountdownFrames,
			Capture:         opts,
		},
		TickRate:    cfg.Viewer.TickRate,
		Store:       store,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting parkshot SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
