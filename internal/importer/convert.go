package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akulinich/ballast/internal/domain"
	"github.com/akulinich/ballast/internal/repository"
)

// ImportedPlan holds the domain objects produced from one plan file,
// ready for persistence.
type ImportedPlan struct {
	Plan         *domain.Plan
	Containers   []*domain.Container
	Items        []*domain.WorkItem
	Dependencies []Dependency
	Records      []repository.AssignmentRecord
}

// Dependency is one resolved item-to-item edge.
type Dependency struct {
	ItemID      string
	DependsOnID string
}

// Convert transforms a validated PlanFile into domain objects.
// Call ValidatePlanFile first; Convert assumes the file is valid.
func Convert(file *PlanFile) (*ImportedPlan, error) {
	now := time.Now().UTC()

	plan := &domain.Plan{
		ID:        uuid.New().String(),
		Name:      file.Plan,
		CreatedAt: now,
		UpdatedAt: now,
	}

	containerIDs := make(map[string]string) // lowercased name -> UUID

	containers := make([]*domain.Container, 0, len(file.Containers))
	for _, c := range file.Containers {
		kind := c.Kind
		if kind == "" {
			kind = string(domain.ContainerSprint)
		}
		container := &domain.Container{
			ID:        uuid.New().String(),
			PlanID:    plan.ID,
			Name:      c.Name,
			Kind:      domain.ContainerKind(kind),
			Capacity:  c.Capacity,
			StartDate: parseOptionalDate(c.Start),
			EndDate:   parseOptionalDate(c.End),
			CreatedAt: now,
			UpdatedAt: now,
		}
		containerIDs[strings.ToLower(c.Name)] = container.ID
		containers = append(containers, container)
	}

	refMap := make(map[string]string) // ref -> UUID
	for _, it := range file.Items {
		refMap[it.Ref] = uuid.New().String()
	}

	items := make([]*domain.WorkItem, 0, len(file.Items))
	var deps []Dependency
	var records []repository.AssignmentRecord
	positions := make(map[string]int) // container ID -> next position

	for _, it := range file.Items {
		kind := it.Kind
		if kind == "" {
			kind = string(domain.ItemTask)
		}
		status := it.Status
		if status == "" {
			status = string(domain.ItemTodo)
		}
		priority := it.Priority
		if priority == "" {
			priority = string(domain.PriorityMedium)
		}

		item := &domain.WorkItem{
			ID:        refMap[it.Ref],
			PlanID:    plan.ID,
			Title:     it.Title,
			Kind:      domain.ItemKind(kind),
			Status:    domain.ItemStatus(status),
			Priority:  domain.Priority(priority),
			Points:    it.Points,
			Project:   it.Project,
			CreatedAt: now,
			UpdatedAt: now,
		}

		for _, depRef := range it.DependsOn {
			depID, ok := refMap[depRef]
			if !ok {
				return nil, fmt.Errorf("depends_on ref %q not found for item %q", depRef, it.Ref)
			}
			item.DependsOn = append(item.DependsOn, depID)
			deps = append(deps, Dependency{ItemID: item.ID, DependsOnID: depID})
		}
		items = append(items, item)

		containerID := domain.UnassignedID
		if it.Container != "" {
			cid, ok := containerIDs[strings.ToLower(it.Container)]
			if !ok {
				return nil, fmt.Errorf("container %q not found for item %q", it.Container, it.Ref)
			}
			containerID = cid
		}
		records = append(records, repository.AssignmentRecord{
			ItemID:      item.ID,
			ContainerID: containerID,
			Position:    positions[containerID],
		})
		positions[containerID]++
	}

	return &ImportedPlan{
		Plan:         plan,
		Containers:   containers,
		Items:        items,
		Dependencies: deps,
		Records:      records,
	}, nil
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
