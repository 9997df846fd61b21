package formatter

import (
	"fmt"
	"strings"

	"github.com/akulinich/ballast/internal/capacity"
)

// FormatWarnings renders overload warnings as a table, worst first.
func FormatWarnings(warnings []capacity.OverloadWarning) string {
	if len(warnings) == 0 {
		return Dim("No overloads.") + "\n"
	}

	var b strings.Builder
	b.WriteString(StyleRed.Render("Overloaded"))
	b.WriteString("\n")

	headers := []string{"Container", "Allocated", "Capacity", "Over", "Severity"}
	rows := make([][]string, 0, len(warnings))
	for _, w := range warnings {
		rows = append(rows, []string{
			w.ContainerName,
			Points(w.Allocated),
			Points(w.Capacity),
			StyleRed.Render(fmt.Sprintf("+%s", Points(w.Overload))),
			SeverityIndicator(w.Severity),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}
