package domain

// Assignment is the total item-to-container mapping for one planning scope.
// Every work item ID appears exactly once; UnassignedID marks items in the
// unassigned pool. Map keys are item IDs, values container IDs.
type Assignment map[string]string

// Clone returns an independent copy.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for item, container := range a {
		out[item] = container
	}
	return out
}

// ContainerOf returns the container holding the item, or UnassignedID when
// the item has no entry. Absence from all real containers means the pool.
func (a Assignment) ContainerOf(itemID string) string {
	if c, ok := a[itemID]; ok {
		return c
	}
	return UnassignedID
}

// ItemsIn returns the IDs of items assigned to the given container, in map
// iteration order. Callers needing determinism sort the result.
func (a Assignment) ItemsIn(containerID string) []string {
	var out []string
	for item, container := range a {
		if container == containerID {
			out = append(out, item)
		}
	}
	return out
}
