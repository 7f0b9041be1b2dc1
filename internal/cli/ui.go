package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/hyprtile/pkg/layout"
	"github.com/matzehuels/hyprtile/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleFloating = lipgloss.NewStyle().Foreground(colorYellow)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// statsLine summarizes a run on one line:
// "3 windows · 1 floating · 2 passes · fresh".
func statsLine(res *pipeline.Result, passes int) string {
	var total layout.Stats
	for _, s := range res.Stats {
		total.Tiled += s.Tiled
		total.Fullscreen += s.Fullscreen
		total.Floating += s.Floating
		total.Skipped += s.Skipped
	}

	parts := []string{fmt.Sprintf("%d windows", total.Tiled+total.Fullscreen+total.Floating)}
	if total.Fullscreen > 0 {
		parts = append(parts, fmt.Sprintf("%d fullscreen", total.Fullscreen))
	}
	if total.Floating > 0 {
		parts = append(parts, fmt.Sprintf("%d floating", total.Floating))
	}
	if total.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", total.Skipped))
	}
	if passes > 1 {
		parts = append(parts, fmt.Sprintf("%d passes", passes))
	}

	status := styleComputed.Render(iconFresh)
	if res.CacheHit {
		status = styleCached.Render(iconCached)
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	return line + StyleDim.Render(" · ") + status
}

// framesTable renders the final frame of every window as a table.
func framesTable(res *pipeline.Result) string {
	var rows [][]string
	floating := make(map[int]bool)
	for _, ws := range res.Report.Workspaces {
		for _, n := range ws.Nodes {
			if n.Kind != "window" {
				continue
			}
			r, ok := res.Frame(n.WindowID)
			if !ok {
				continue
			}
			kind := "tiled"
			switch {
			case n.Floating:
				kind = "floating"
				floating[len(rows)] = true
			case n.Fullscreen:
				kind = "fullscreen"
			}
			rows = append(rows, []string{
				ws.Name,
				fmt.Sprintf("%d", n.WindowID),
				n.Title,
				kind,
				fmt.Sprintf("%.0f,%.0f", r.X, r.Y),
				fmt.Sprintf("%.0fx%.0f", r.Width, r.Height),
			})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Workspace", "Window", "Title", "Kind", "Position", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case floating[row]:
				return styleFloating
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
