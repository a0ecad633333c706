package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/spiramirabilis/pkg/figure"
	"github.com/matzehuels/spiramirabilis/pkg/spiral"
)

// Terminal palette. Goldenrod is the accent used for rectangles in the
// figures themselves.
var (
	colorGold  = lipgloss.Color("178")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("214")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleHighlight marks figure and constant names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorGold)

	// StyleDim is used for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue is used for paths and other values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber is used for counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorGold).Bold(true)

	// StyleWarning is used for figures that were skipped or failed.
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)
)

var (
	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailed  = lipgloss.NewStyle().Foreground(colorRed)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(9)
	styleSpinner = lipgloss.NewStyle().Foreground(colorGold)
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleOK.Render("✓") + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleFailed.Render("✗") + " " + fmt.Sprintf(format, args...))
}

// printWarning reports a problem that did not stop the command.
func printWarning(format string, args ...any) {
	fmt.Println(StyleWarning.Render("! " + fmt.Sprintf(format, args...)))
}

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printHint suggests the command to run next, after a blank line.
func printHint(description, command string) {
	fmt.Println()
	fmt.Println(StyleDim.Render(description+":") + " " + StyleHighlight.Render(command))
}

// printFigure prints the figure summary below a rendered or composed figure.
func printFigure(fig *figure.Figure, cached bool) {
	for _, f := range figureSummary(fig) {
		fmt.Println("  " + styleLabel.Render(f.label) + " " + StyleValue.Render(f.value))
	}
	if cached {
		printDetail("served from cache")
	}
}

type field struct {
	label, value string
}

// figureSummary describes the page, the fit and the drawn content of fig.
func figureSummary(fig *figure.Figure) []field {
	fields := []field{
		{"page", pageSize(fig.Page)},
		{"fit", fmt.Sprintf("rotation %s°, scale %s cm",
			trimFloat(fig.Fit.Rotation*180/math.Pi, 2), trimFloat(fig.Fit.Scale, 4))},
	}

	var drawn []string
	if fig.Points > 0 {
		drawn = append(drawn, fmt.Sprintf("%d points", fig.Points))
	}
	for _, r := range []struct {
		role figure.Role
		noun string
	}{
		{figure.RoleRadius, "radii"},
		{figure.RoleRectangle, "rectangle"},
		{figure.RoleChain, "chain paths"},
		{figure.RoleInput, "inputs"},
		{figure.RoleOutput, "outputs"},
	} {
		if n := fig.Count(r.role); n > 0 {
			drawn = append(drawn, fmt.Sprintf("%d %s", n, r.noun))
		}
	}
	if len(drawn) > 0 {
		fields = append(fields, field{"drawn", strings.Join(drawn, ", ")})
	}
	return fields
}

func pageSize(p spiral.Page) string {
	s := trimFloat(p.Width, 1) + "×" + trimFloat(p.Height, 1) + " mm"
	if p.Margin > 0 {
		s += ", margin " + trimFloat(p.Margin, 1)
	}
	return s
}

// trimFloat formats v with at most prec decimals and no trailing zeros.
func trimFloat(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
