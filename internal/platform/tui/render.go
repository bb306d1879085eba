package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/parkshot/internal/core"
)

// halfBlock shows the top sample as foreground and the bottom as background.
const halfBlock = "▀"

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	flashStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#ffffff"))
)

type cellColors struct {
	top, bottom uint8
}

// RenderFrame downsamples fb into cols x rows terminal cells, two pixels
// per cell, coloured through pal.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderFrame(fb *core.PixelBuffer, pal *core.Palette, cols, rows int) string {
	if cols <= 0 || rows <= 0 || fb.Width() == 0 || fb.Height() == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(cols*rows*2 + rows)

	sample := func(cx, py int) uint8 {
		return fb.At(cx*fb.Width()/cols, py*fb.Height()/(rows*2))
	}

	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < cols {
			start := cellColors{sample(x, 2*y), sample(x, 2*y+1)}
			n := 0
			for x < cols && (cellColors{sample(x, 2*y), sample(x, 2*y+1)}) == start {
				n++
				x++
			}

			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(pal[start.top].Hex())).
				Background(lipgloss.Color(pal[start.bottom].Hex()))
			sb.WriteString(style.Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

// RenderFlash returns a blank white frame of cols x rows cells.
func RenderFlash(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	line := flashStyle.Render(strings.Repeat(" ", cols))
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// RenderStatus renders the status line, or nothing when s is empty.
func RenderStatus(s string) string {
	if s == "" {
		return ""
	}
	return statusStyle.Render(s)
}
