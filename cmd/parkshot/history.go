package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkshot/internal/capture"
	"github.com/vovakirdan/parkshot/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryMode  string
	flagHistoryStats bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent captures",
	Long: `Display the most recent screenshots recorded in the capture history.

Examples:
  parkshot history
  parkshot history --limit 5
  parkshot history --mode giant
  parkshot history --stats
  parkshot history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of captures to show")
	historyCmd.Flags().StringVar(&flagHistoryMode, "mode", "", "Only show one mode: standard, giant, headless")
	historyCmd.Flags().BoolVar(&flagHistoryStats, "stats", false, "Show per-mode statistics")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the whole history")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.History.DBPath)
	if err != nil {
		fatalf("opening capture history: %v", err)
	}
	defer store.Close()

	switch {
	case flagHistoryClear:
		if err := store.ClearCaptures(); err != nil {
			fatalf("%v", err)
		}
		fmt.Println("Capture history cleared.")
	case flagHistoryStats:
		printStats(store)
	default:
		printHistory(store)
	}
}

func printHistory(store *storage.Store) {
	var (
		entries []storage.CaptureEntry
		err     error
	)
	if flagHistoryMode != "" {
		mode, parseErr := capture.ParseMode(flagHistoryMode)
		if parseErr != nil {
			fatalf("%v", parseErr)
		}
		entries, err = store.CapturesByMode(mode, flagHistoryLimit)
	} else {
		entries, err = store.RecentCaptures(flagHistoryLimit)
	}
	if err != nil {
		fatalf("retrieving captures: %v", err)
	}

	if len(entries) == 0 {
		fmt.Println("No captures recorded yet.")
		fmt.Println()
		fmt.Println("Run 'parkshot view <file>' and press ctrl+s to take one!")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-8s  %-11s  %-4s  %-3s  %s\n", "Date", "Mode", "Size", "Zoom", "Rot", "File")
	fmt.Printf("  %-16s  %-8s  %-11s  %-4s  %-3s  %s\n", "----", "----", "----", "----", "---", "----")

	for _, e := range entries {
		size := fmt.Sprintf("%dx%d", e.Width, e.Height)
		fmt.Printf("  %-16s  %-8s  %-11s  %-4d  %-3d  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Mode, size, e.Zoom, e.Rotation, e.Path)
	}

	fmt.Println()
	fmt.Printf("Screenshots are in %s\n", filepath.Dir(entries[0].Path))
}

func printStats(store *storage.Store) {
	stats, err := store.GetModeStats()
	if err != nil {
		fatalf("%v", err)
	}
	if len(stats) == 0 {
		fmt.Println("No captures recorded yet.")
		return
	}

	modes := make([]capture.Mode, 0, len(stats))
	for m := range stats {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })

	fmt.Printf("  %-8s  %-6s  %-14s  %s\n", "Mode", "Count", "Largest (px)", "Last")
	fmt.Printf("  %-8s  %-6s  %-14s  %s\n", "----", "-----", "------------", "----")
	for _, m := range modes {
		s := stats[m]
		fmt.Printf("  %-8s  %-6d  %-14d  %s\n", s.Mode, s.Count, s.LargestArea, s.LastCaptured.Local().Format("2006-01-02 15:04"))
	}
}
