package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akulinich/ballast/internal/capacity"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// UtilizationColor returns the style for a utilization percentage:
// green under 70, yellow up to 100, red beyond.
func UtilizationColor(pct int) lipgloss.Style {
	switch {
	case pct > 100:
		return StyleRed
	case pct >= 70:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// SeverityIndicator returns a colored marker for an overload severity.
func SeverityIndicator(sev capacity.OverloadSeverity) string {
	switch sev {
	case capacity.SeverityHigh:
		return StyleRed.Render("● HIGH")
	case capacity.SeverityMedium:
		return StyleYellow.Render("● MEDIUM")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// RiskIndicator returns a colored pace marker for a sprint risk level.
func RiskIndicator(level capacity.RiskLevel) string {
	switch level {
	case capacity.RiskCritical:
		return StyleRed.Render("● behind")
	case capacity.RiskAtRisk:
		return StyleYellow.Render("● at risk")
	default:
		return StyleGreen.Render("● on track")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Points formats a point value, dropping the fraction when whole.
func Points(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
