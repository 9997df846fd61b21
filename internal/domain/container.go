package domain

import "time"

// UnassignedID is the reserved container ID for the unassigned pool.
// Every work item is always assigned to exactly one container; items not
// placed in a real sprint or person live here, never in a nullable field.
const UnassignedID = "unassigned"

type Container struct {
	ID     string
	PlanID string
	Name   string
	Kind   ContainerKind

	// Capacity in story points for the container's time window. For a
	// sprint this is the team velocity target; for a person it is
	// availability converted to points.
	Capacity float64

	// Time window, sprints only.
	StartDate *time.Time
	EndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPool reports whether the container is the reserved unassigned pool.
func (c *Container) IsPool() bool {
	return c.ID == UnassignedID || c.Kind == ContainerPool
}
