package formatter

import (
	"fmt"
	"strings"

	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/domain"
)

// FormatBoard renders the full planning board: one section per sprint lane
// with its capacity meter, then the unassigned pool, then overload warnings.
func FormatBoard(view *contract.BoardView) string {
	var b strings.Builder

	b.WriteString(Header(view.Plan.Name))
	b.WriteString("\n\n")

	riskByID := make(map[string]capacity.SprintRisk, len(view.Risks))
	for _, r := range view.Risks {
		riskByID[r.ContainerID] = r
	}

	for _, lane := range view.Lanes {
		b.WriteString(formatLane(lane, riskByID))
		b.WriteString("\n")
	}

	b.WriteString(StyleBold.Render("Unassigned"))
	b.WriteString("\n")
	if len(view.Unassigned) == 0 {
		b.WriteString(Dim("  (empty)"))
		b.WriteString("\n")
	} else {
		for _, item := range view.Unassigned {
			b.WriteString("  " + formatItemLine(item) + "\n")
		}
	}

	if len(view.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatWarnings(view.Warnings))
	}

	return b.String()
}

func formatLane(lane contract.Lane, riskByID map[string]capacity.SprintRisk) string {
	var b strings.Builder

	window := ""
	if lane.Container.StartDate != nil && lane.Container.EndDate != nil {
		window = Dim(fmt.Sprintf("  %s → %s",
			lane.Container.StartDate.Format("Jan 02"),
			lane.Container.EndDate.Format("Jan 02")))
	}
	pace := ""
	if r, ok := riskByID[lane.Container.ID]; ok {
		pace = "  " + RiskIndicator(r.Level)
	}

	b.WriteString(fmt.Sprintf("%s%s%s\n", StyleBold.Render(lane.Container.Name), window, pace))
	b.WriteString(fmt.Sprintf("  %s  %s/%s pts\n",
		RenderMeter(lane.Usage.UtilizationPct(), 20),
		Points(lane.Usage.Allocated),
		Points(lane.Usage.Capacity)))

	for _, item := range lane.Items {
		b.WriteString("  " + formatItemLine(item) + "\n")
	}
	return b.String()
}

func formatItemLine(item domain.WorkItem) string {
	pts := Dim(fmt.Sprintf("(%s pts)", Points(item.Points)))
	line := fmt.Sprintf("%s %s %s", priorityMark(item.Priority), item.Title, pts)
	if item.Status == domain.ItemDone {
		line += " " + StyleGreen.Render("✓")
	}
	return line
}

func priorityMark(p domain.Priority) string {
	switch p {
	case domain.PriorityCritical:
		return StyleRed.Render("!!")
	case domain.PriorityHigh:
		return StyleYellow.Render(" !")
	case domain.PriorityLow:
		return StyleDim.Render(" ·")
	default:
		return StyleFg.Render(" ·")
	}
}
