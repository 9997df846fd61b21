package domain

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// PriorityRank returns a sort rank (lower = more urgent).
// Unknown priorities rank below low so malformed data never jumps the queue.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"critical": true, "high": true, "medium": true, "low": true,
}

type ItemStatus string

const (
	ItemTodo       ItemStatus = "todo"
	ItemInProgress ItemStatus = "in_progress"
	ItemDone       ItemStatus = "done"
)

type ItemKind string

const (
	ItemFeature ItemKind = "feature"
	ItemStory   ItemKind = "story"
	ItemTask    ItemKind = "task"
)

// ValidItemKinds is the canonical set of accepted work item kind strings.
var ValidItemKinds = map[string]bool{
	"feature": true, "story": true, "task": true,
}

type ContainerKind string

const (
	ContainerSprint ContainerKind = "sprint"
	ContainerPerson ContainerKind = "person"
	ContainerPool   ContainerKind = "pool"
)
