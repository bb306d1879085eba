package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkshot/internal/currency"
)

var flagASCII bool

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List supported currencies",
	Long: `Shows every currency a park can display prices in, with its exchange
rate relative to 0.10 GBP and the symbol written before or after amounts.

Examples:
  parkshot currencies
  parkshot currencies --ascii`,
	Args: cobra.NoArgs,
	Run:  runCurrencies,
}

func init() {
	currenciesCmd.Flags().BoolVar(&flagASCII, "ascii", false, "Show the ASCII-only symbols")
}

// pad left-aligns s in a column of display width w.
func pad(s string, w int) string {
	return runewidth.FillRight(s, w)
}

func runCurrencies(_ *cobra.Command, _ []string) {
	all := currency.All()

	// Calculate column widths
	nameW, symW := runewidth.StringWidth("Name"), runewidth.StringWidth("Symbol")
	for _, d := range all {
		nameW = max(nameW, runewidth.StringWidth(d.Name))
		sym, _ := d.Symbol(!flagASCII)
		symW = max(symW, runewidth.StringWidth(fmt.Sprintf("%q", sym)))
	}

	// Print header
	fmt.Printf("  %-3s  %s  %6s  %s  %s\n", "ISO", pad("Name", nameW), "Rate", pad("Symbol", symW), "Position")
	fmt.Printf("  %-3s  %s  %6s  %s  %s\n", "---", pad("----", nameW), "----", pad("------", symW), "--------")

	for _, d := range all {
		sym, affix := d.Symbol(!flagASCII)
		fmt.Printf("  %-3s  %s  %6d  %s  %s\n", d.ISOCode, pad(d.Name, nameW), d.Rate, pad(fmt.Sprintf("%q", sym), symW), affix)
	}
}
