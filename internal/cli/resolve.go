package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/akulinich/ballast/internal/domain"
)

// anyChanged reports whether any of the named flags was set.
func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	for _, n := range names {
		if fs.Changed(n) {
			return true
		}
	}
	return false
}

// resolvePlanID accepts a plan name (case-insensitive), a full UUID, or a
// unique UUID prefix.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("plan is required")
	}

	plans, err := app.Plans.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range plans {
		if strings.EqualFold(p.Name, input) || p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveContainerID accepts a container name within a plan, the literal
// "unassigned", a full UUID, or a unique UUID prefix.
func resolveContainerID(ctx context.Context, app *App, planID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("container is required")
	}
	if strings.EqualFold(input, domain.UnassignedID) {
		return domain.UnassignedID, nil
	}

	containers, err := app.Containers.ListByPlan(ctx, planID)
	if err != nil {
		return "", err
	}

	for _, c := range containers {
		if strings.EqualFold(c.Name, input) || c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range containers {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("container not found in plan: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("container %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveItemID accepts a work item title within a plan, a full UUID, or a
// unique UUID prefix.
func resolveItemID(ctx context.Context, app *App, planID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("item is required")
	}

	items, err := app.Items.ListByPlan(ctx, planID)
	if err != nil {
		return "", err
	}

	for _, w := range items {
		if strings.EqualFold(w.Title, input) || w.ID == input {
			return w.ID, nil
		}
	}

	var matches []string
	for _, w := range items {
		if strings.HasPrefix(w.ID, input) {
			matches = append(matches, w.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("item not found in plan: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("item %q is ambiguous (%d matches)", input, len(matches))
	}
}
