package domain

import "time"

// Plan is one planning scope: a Program Increment board (features across
// sprints) or a workload view (tasks and stories across people).
type Plan struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
