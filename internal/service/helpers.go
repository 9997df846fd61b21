package service

import (
	"sort"

	"github.com/akulinich/ballast/internal/allocation"
	"github.com/akulinich/ballast/internal/domain"
	"github.com/akulinich/ballast/internal/repository"
)

// assignmentFromRecords rebuilds the assignment map from persisted records.
// Records naming items or containers that no longer exist are dropped, so
// their items land back in the unassigned pool instead of failing the load.
func assignmentFromRecords(records []repository.AssignmentRecord, items []domain.WorkItem, containers []domain.Container) domain.Assignment {
	knownItems := make(map[string]bool, len(items))
	for _, it := range items {
		knownItems[it.ID] = true
	}
	knownContainers := map[string]bool{domain.UnassignedID: true}
	for _, c := range containers {
		knownContainers[c.ID] = true
	}

	assignment := make(domain.Assignment, len(records))
	for _, rec := range records {
		if !knownItems[rec.ItemID] || !knownContainers[rec.ContainerID] {
			continue
		}
		assignment[rec.ItemID] = rec.ContainerID
	}
	return assignment
}

// orderItemsByPosition sorts items so that within each container they follow
// their persisted positions. Items without a record keep their storage order
// and sort after positioned ones.
func orderItemsByPosition(items []domain.WorkItem, records []repository.AssignmentRecord) []domain.WorkItem {
	position := make(map[string]int, len(records))
	for _, rec := range records {
		position[rec.ItemID] = rec.Position
	}
	out := append([]domain.WorkItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, iok := position[out[i].ID]
		pj, jok := position[out[j].ID]
		if iok != jok {
			return iok
		}
		return iok && pi < pj
	})
	return out
}

// snapshotRecords flattens a snapshot's per-container ordering into
// assignment records, pool placements included.
func snapshotRecords(snap allocation.Snapshot) []repository.AssignmentRecord {
	containerIDs := []string{domain.UnassignedID}
	for _, c := range snap.Containers {
		containerIDs = append(containerIDs, c.ID)
	}

	var records []repository.AssignmentRecord
	for _, containerID := range containerIDs {
		for pos, itemID := range snap.Order[containerID] {
			records = append(records, repository.AssignmentRecord{
				ItemID:      itemID,
				ContainerID: containerID,
				Position:    pos,
			})
		}
	}
	return records
}

func itemsByID(items []domain.WorkItem) map[string]domain.WorkItem {
	byID := make(map[string]domain.WorkItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	return byID
}
