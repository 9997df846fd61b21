package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/domain"
)

// FormatWorkload renders one person's workload meter, the grouped
// breakdown, and suggested pick-ups.
func FormatWorkload(view *contract.WorkloadView) string {
	var b strings.Builder
	w := view.Workload

	b.WriteString(Header(view.Person.Name))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s  %s/%s pts\n",
		RenderMeter(w.UtilizationPct(), 24),
		Points(w.AssignedPoints),
		Points(w.Capacity)))

	switch {
	case w.Overloaded:
		b.WriteString("  " + StyleRed.Render("Overloaded") + "\n")
	case w.Underutilized:
		b.WriteString("  " + StyleBlue.Render(fmt.Sprintf("Room for %s more pts", Points(w.AvailablePoints))) + "\n")
	default:
		b.WriteString("  " + StyleGreen.Render("Balanced") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(formatAssigned(view))
	b.WriteString(formatBreakdown(view))

	if len(view.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleBold.Render("Could pick up"))
		b.WriteString("\n")
		for _, item := range view.Suggestions {
			b.WriteString("  " + formatItemLine(item) + "\n")
		}
	}

	return b.String()
}

// formatAssigned lists the person's items by kind, in lane order.
func formatAssigned(view *contract.WorkloadView) string {
	if len(view.Assigned) == 0 {
		return StyleBold.Render("Assigned") + "\n" + Dim("  (nothing)") + "\n\n"
	}

	var b strings.Builder
	sections := []struct {
		label string
		kind  domain.ItemKind
	}{
		{"Features", domain.ItemFeature},
		{"Stories", domain.ItemStory},
		{"Tasks", domain.ItemTask},
	}
	for _, sec := range sections {
		items := view.ByKind(sec.kind)
		if len(items) == 0 {
			continue
		}
		b.WriteString(StyleBold.Render(sec.label))
		b.WriteString("\n")
		for _, item := range items {
			b.WriteString("  " + formatItemLine(item) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func formatBreakdown(view *contract.WorkloadView) string {
	var b strings.Builder
	bd := view.Breakdown

	b.WriteString(StyleBold.Render("By status"))
	b.WriteString("\n")
	for _, st := range []domain.ItemStatus{domain.ItemTodo, domain.ItemInProgress, domain.ItemDone} {
		if pts, ok := bd.ByStatus[st]; ok {
			b.WriteString(fmt.Sprintf("  %-12s %s pts\n", string(st), Points(pts)))
		}
	}

	b.WriteString(StyleBold.Render("By priority"))
	b.WriteString("\n")
	for _, p := range []domain.Priority{domain.PriorityCritical, domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow} {
		if pts, ok := bd.ByPriority[p]; ok {
			b.WriteString(fmt.Sprintf("  %-12s %s pts\n", string(p), Points(pts)))
		}
	}

	if len(bd.ByProject) > 0 {
		b.WriteString(StyleBold.Render("By project"))
		b.WriteString("\n")
		projects := make([]string, 0, len(bd.ByProject))
		for name := range bd.ByProject {
			projects = append(projects, name)
		}
		sort.Strings(projects)
		for _, name := range projects {
			b.WriteString(fmt.Sprintf("  %-12s %s pts\n", name, Points(bd.ByProject[name])))
		}
	}

	return b.String()
}
