package formatter

import (
	"fmt"
	"strings"

	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/domain"
)

// FormatOptimizeOutcome renders a rebalance candidate: headline metrics,
// the proposed moves, and any overloads the candidate could not avoid.
func FormatOptimizeOutcome(outcome *contract.OptimizeOutcome, containerNames map[string]string) string {
	var b strings.Builder

	b.WriteString(Header("Rebalance"))
	b.WriteString("\n\n")

	if outcome.Degenerate {
		b.WriteString(StyleYellow.Render("No usable capacity; everything goes back to the pool."))
		b.WriteString("\n")
	}

	m := outcome.Metrics
	b.WriteString(fmt.Sprintf("  Total work:    %s pts\n", Points(m.TotalPoints)))
	b.WriteString(fmt.Sprintf("  Capacity:      %s pts\n", Points(m.TotalCapacity)))
	b.WriteString(fmt.Sprintf("  Utilization:   %.0f%%\n", m.OverallUtilization))
	b.WriteString(fmt.Sprintf("  Balance score: %.2f\n", m.BalanceScore))
	b.WriteString("\n")

	if len(outcome.Moves) == 0 {
		b.WriteString(Dim("  Already balanced; nothing to move.") + "\n")
		return b.String()
	}

	headers := []string{"Item", "Pts", "From", "To"}
	rows := make([][]string, 0, len(outcome.Moves))
	for _, mv := range outcome.Moves {
		rows = append(rows, []string{
			mv.Item.Title,
			Points(mv.Item.Points),
			containerLabel(mv.From, containerNames),
			containerLabel(mv.To, containerNames),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	if len(outcome.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatWarnings(outcome.Warnings))
	}

	return b.String()
}

func containerLabel(id string, names map[string]string) string {
	if id == domain.UnassignedID {
		return Dim("(unassigned)")
	}
	if name, ok := names[id]; ok {
		return name
	}
	return id
}
