package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/akulinich/ballast/internal/domain"
)

var validContainerKinds = map[string]bool{"sprint": true, "person": true}

var validItemStatuses = map[string]bool{"todo": true, "in_progress": true, "done": true}

// ValidatePlanFile checks the plan file for errors before conversion.
// Returns a slice of all validation errors found.
func ValidatePlanFile(file *PlanFile) []error {
	var errs []error

	if file.Plan == "" {
		errs = append(errs, fmt.Errorf("plan name is required"))
	}

	containerNames := make(map[string]bool)
	errs = append(errs, validateContainers(file.Containers, containerNames)...)

	itemRefs := make(map[string]bool)
	errs = append(errs, validateItems(file.Items, containerNames, itemRefs)...)

	errs = append(errs, detectCycles(file.Items)...)

	return errs
}

func validateContainers(containers []ContainerImport, names map[string]bool) []error {
	var errs []error

	for i, c := range containers {
		prefix := fmt.Sprintf("containers[%d]", i)

		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else {
			key := strings.ToLower(c.Name)
			if names[key] {
				errs = append(errs, fmt.Errorf("%s.name: duplicate name %q", prefix, c.Name))
			}
			names[key] = true
		}
		if strings.EqualFold(c.Name, domain.UnassignedID) {
			errs = append(errs, fmt.Errorf("%s.name: %q is reserved", prefix, c.Name))
		}

		if c.Kind != "" && !validContainerKinds[c.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q (sprint|person)", prefix, c.Kind))
		}
		if c.Capacity < 0 {
			errs = append(errs, fmt.Errorf("%s.capacity must not be negative", prefix))
		}

		errs = append(errs, validateOptionalDate(prefix+".start", c.Start)...)
		errs = append(errs, validateOptionalDate(prefix+".end", c.End)...)
		if c.Start != "" && c.End != "" {
			start, startErr := time.Parse("2006-01-02", c.Start)
			end, endErr := time.Parse("2006-01-02", c.End)
			if startErr == nil && endErr == nil && !end.After(start) {
				errs = append(errs, fmt.Errorf("%s: end %q must be after start %q", prefix, c.End, c.Start))
			}
		}
	}

	return errs
}

func validateItems(items []ItemImport, containerNames map[string]bool, refs map[string]bool) []error {
	var errs []error

	for i, it := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[it.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, it.Ref))
		} else {
			refs[it.Ref] = true
		}

		if it.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if it.Kind != "" && !domain.ValidItemKinds[it.Kind] {
			errs = append(errs, fmt.Errorf("%s.kind: invalid value %q", prefix, it.Kind))
		}
		if it.Status != "" && !validItemStatuses[it.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, it.Status))
		}
		if it.Priority != "" && !domain.ValidPriorities[it.Priority] {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, it.Priority))
		}
		if it.Points < 0 {
			errs = append(errs, fmt.Errorf("%s.points must not be negative", prefix))
		}

		if it.Container != "" && !containerNames[strings.ToLower(it.Container)] {
			errs = append(errs, fmt.Errorf("%s.container: %q not found in containers", prefix, it.Container))
		}

		for _, dep := range it.DependsOn {
			if dep == it.Ref {
				errs = append(errs, fmt.Errorf("%s: item %q cannot depend on itself", prefix, it.Ref))
			}
		}
	}

	// Dependency targets may appear later in the file, so check after the
	// full ref set is known.
	for i, it := range items {
		for _, dep := range it.DependsOn {
			if dep != it.Ref && !refs[dep] {
				errs = append(errs, fmt.Errorf("items[%d].depends_on: ref %q not found in items", i, dep))
			}
		}
	}

	return errs
}

func detectCycles(items []ItemImport) []error {
	graph := make(map[string][]string)
	nodes := make(map[string]bool)
	for _, it := range items {
		for _, dep := range it.DependsOn {
			if it.Ref == "" || dep == "" || it.Ref == dep {
				continue
			}
			graph[dep] = append(graph[dep], it.Ref)
			nodes[dep] = true
			nodes[it.Ref] = true
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	color := make(map[string]int)
	var errs []error

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, neighbor := range graph[node] {
			if color[neighbor] == gray {
				errs = append(errs, fmt.Errorf("circular dependency detected involving %q and %q", node, neighbor))
				return true
			}
			if color[neighbor] == white {
				if visit(neighbor) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for node := range nodes {
		if color[node] == white {
			visit(node)
		}
	}

	return errs
}

func validateOptionalDate(field, dateStr string) []error {
	if dateStr == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, dateStr)}
	}
	return nil
}
