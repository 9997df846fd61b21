package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderMeter renders a utilization bar like [████░░░░] 45%. The bar fills
// relative to 100% and caps there; the percentage label keeps the real
// value so an overload reads [████████] 120%.
func RenderMeter(pct int, width int) string {
	if width < 2 {
		width = 2
	}

	fill := pct
	if fill < 0 {
		fill = 0
	}
	if fill > 100 {
		fill = 100
	}

	filled := fill * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	pctStr := fmt.Sprintf("%3d%%", pct)
	return fmt.Sprintf("[%s] %s", UtilizationColor(pct).Render(bar), pctStr)
}
