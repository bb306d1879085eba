package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkshot/internal/engine"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List supported park file formats",
	Long:  `Shows the engine backends compiled in and the file extensions each one opens.`,
	Args:  cobra.NoArgs,
	Run:   runBackends,
}

func runBackends(_ *cobra.Command, _ []string) {
	backends := engine.List()

	if len(backends) == 0 {
		fmt.Println("No backends available.")
		return
	}

	fmt.Println("Available backends:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, b := range backends {
		if len(b.Name) > maxNameLen {
			maxNameLen = len(b.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Extensions")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "----------")

	for _, b := range backends {
		fmt.Printf("  %-*s  %s\n", maxNameLen, b.Name, strings.Join(b.Extensions, ", "))
	}

	fmt.Println()
	fmt.Println("Run 'parkshot view <file>' to open a park.")
}
