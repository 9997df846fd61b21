// Package allocation holds the authoritative item-to-container mapping for
// one planning scope and applies mutation commands against it. The store is
// the single mutable resource of the engine; all capacity math runs over
// immutable snapshots taken from it.
package allocation

import (
	"fmt"
	"sort"

	"github.com/akulinich/ballast/internal/domain"
)

// Store holds items, containers, and the total assignment function for one
// open board or meter view. Items and containers are fixed at construction
// (their lifecycle belongs to CRUD collaborators); only the assignment and
// per-container ordering mutate, via MoveItem and ReplaceAssignment.
//
// Store is not safe for concurrent use; Session serializes access for
// callers that interleave async work.
type Store struct {
	items      map[string]domain.WorkItem
	containers map[string]domain.Container

	// Construction order, kept so snapshots are deterministic.
	itemIDs      []string
	containerIDs []string

	assignment domain.Assignment

	// order holds the display order of items within each container,
	// including the unassigned pool. Every assigned item appears in
	// exactly one order slice.
	order map[string][]string

	version uint64
}

// NewStore builds a store from a backend snapshot. Items absent from the
// assignment are placed in the unassigned pool (the mapping is total by
// construction). Assignment entries naming unknown items or containers are
// rejected with a ValidationError; negative points are rejected outright.
func NewStore(items []domain.WorkItem, containers []domain.Container, assignment domain.Assignment) (*Store, error) {
	s := &Store{
		items:      make(map[string]domain.WorkItem, len(items)),
		containers: make(map[string]domain.Container, len(containers)),
		assignment: make(domain.Assignment, len(items)),
		order:      make(map[string][]string),
	}

	for _, c := range containers {
		if _, dup := s.containers[c.ID]; dup {
			return nil, fmt.Errorf("duplicate container %q", c.ID)
		}
		s.containers[c.ID] = c
		s.containerIDs = append(s.containerIDs, c.ID)
	}

	for _, item := range items {
		if item.Points < 0 {
			return nil, fmt.Errorf("item %q has negative points %v", item.ID, item.Points)
		}
		if _, dup := s.items[item.ID]; dup {
			return nil, fmt.Errorf("duplicate item %q", item.ID)
		}
		s.items[item.ID] = item
		s.itemIDs = append(s.itemIDs, item.ID)
	}

	verr := &ValidationError{}
	for itemID, containerID := range assignment {
		if _, ok := s.items[itemID]; !ok {
			verr.UnknownItems = append(verr.UnknownItems, itemID)
			continue
		}
		if !s.knownContainer(containerID) {
			verr.UnknownContainers = append(verr.UnknownContainers, containerID)
		}
	}
	if !verr.empty() {
		return nil, verr
	}

	for _, id := range s.itemIDs {
		target := assignment.ContainerOf(id)
		s.assignment[id] = target
		s.order[target] = append(s.order[target], id)
	}

	return s, nil
}

func (s *Store) knownContainer(id string) bool {
	if id == domain.UnassignedID {
		return true
	}
	_, ok := s.containers[id]
	return ok
}

// Version counts accepted mutations. No-ops and rejected commands do not
// advance it.
func (s *Store) Version() uint64 { return s.version }

// Item returns the work item with the given ID.
func (s *Store) Item(id string) (domain.WorkItem, bool) {
	item, ok := s.items[id]
	return item, ok
}

// Container returns the container with the given ID.
func (s *Store) Container(id string) (domain.Container, bool) {
	c, ok := s.containers[id]
	return c, ok
}

// MoveItem reassigns one item, the drag-end command. The destination index
// is clamped into the target's current order. Moving an item onto itself at
// its current position is a no-op: no state change, no version bump.
//
// Unknown item or destination, or an item that is not actually in the given
// source container, rejects with PreconditionError and mutates nothing.
func (s *Store) MoveItem(itemID, fromID, toID string, index int) error {
	if _, ok := s.items[itemID]; !ok {
		return &PreconditionError{Kind: "item", ID: itemID}
	}
	if !s.knownContainer(toID) {
		return &PreconditionError{Kind: "container", ID: toID}
	}
	if !s.knownContainer(fromID) {
		return &PreconditionError{Kind: "container", ID: fromID}
	}
	if s.assignment[itemID] != fromID {
		return &PreconditionError{Kind: "placement", ID: itemID}
	}

	fromOrder := s.order[fromID]
	currentIdx := indexOf(fromOrder, itemID)

	if fromID == toID {
		target := clampIndex(index, len(fromOrder)-1)
		if target == currentIdx {
			return nil
		}
		s.order[fromID] = reinsert(fromOrder, currentIdx, target)
		s.version++
		return nil
	}

	s.order[fromID] = removeAt(fromOrder, currentIdx)
	toOrder := s.order[toID]
	target := clampIndex(index, len(toOrder))
	s.order[toID] = insertAt(toOrder, target, itemID)
	s.assignment[itemID] = toID
	s.version++
	return nil
}

// Apply runs a MoveCommand against the store.
func (s *Store) Apply(cmd MoveCommand) error {
	return s.MoveItem(cmd.ItemID, cmd.From, cmd.To, cmd.Index)
}

// ReplaceAssignment bulk-replaces the mapping, used to accept optimizer
// output or a server refresh. The candidate must be a total function over
// the store's items; otherwise a ValidationError naming the offending IDs
// is returned and the prior assignment stays intact.
//
// Items that keep their container keep their relative order; items that
// moved are appended to their new container sorted by ID.
func (s *Store) ReplaceAssignment(candidate domain.Assignment) error {
	verr := &ValidationError{}
	for _, id := range s.itemIDs {
		if _, ok := candidate[id]; !ok {
			verr.MissingItems = append(verr.MissingItems, id)
		}
	}
	for itemID, containerID := range candidate {
		if _, ok := s.items[itemID]; !ok {
			verr.UnknownItems = append(verr.UnknownItems, itemID)
			continue
		}
		if !s.knownContainer(containerID) {
			verr.UnknownContainers = append(verr.UnknownContainers, containerID)
		}
	}
	if !verr.empty() {
		return verr
	}

	newOrder := make(map[string][]string)
	var moved []string
	for _, containerID := range append([]string{domain.UnassignedID}, s.containerIDs...) {
		for _, itemID := range s.order[containerID] {
			if candidate[itemID] == containerID {
				newOrder[containerID] = append(newOrder[containerID], itemID)
			}
		}
	}
	for _, itemID := range s.itemIDs {
		if candidate[itemID] != s.assignment[itemID] {
			moved = append(moved, itemID)
		}
	}
	sort.Strings(moved)
	for _, itemID := range moved {
		target := candidate[itemID]
		newOrder[target] = append(newOrder[target], itemID)
	}

	s.assignment = candidate.Clone()
	s.order = newOrder
	s.version++
	return nil
}

// Snapshot is an immutable copy of the store's state for pure computation.
type Snapshot struct {
	Items      []domain.WorkItem
	Containers []domain.Container
	Assignment domain.Assignment
	// Order maps container ID (including the pool) to its item IDs in
	// display order.
	Order map[string][]string
}

// Snapshot returns a deep copy; callers must not feed it back into the
// store except through ReplaceAssignment.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Items:      make([]domain.WorkItem, 0, len(s.itemIDs)),
		Containers: make([]domain.Container, 0, len(s.containerIDs)),
		Assignment: s.assignment.Clone(),
		Order:      make(map[string][]string, len(s.order)),
	}
	for _, id := range s.itemIDs {
		item := s.items[id]
		item.DependsOn = append([]string(nil), item.DependsOn...)
		snap.Items = append(snap.Items, item)
	}
	for _, id := range s.containerIDs {
		snap.Containers = append(snap.Containers, s.containers[id])
	}
	for containerID, ids := range s.order {
		snap.Order[containerID] = append([]string(nil), ids...)
	}
	return snap
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func clampIndex(idx, max int) int {
	if idx < 0 {
		return 0
	}
	if idx > max {
		return max
	}
	return idx
}

func removeAt(ids []string, idx int) []string {
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:idx]...)
	return append(out, ids[idx+1:]...)
}

func insertAt(ids []string, idx int, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids[:idx]...)
	out = append(out, id)
	return append(out, ids[idx:]...)
}

func reinsert(ids []string, from, to int) []string {
	id := ids[from]
	return insertAt(removeAt(ids, from), to, id)
}
