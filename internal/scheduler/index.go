package scheduler

import (
	"fmt"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

type indexEntry struct {
	parentID string
	children []string
	path     []string
}

// GroupIndex is a flat lookup over the group forest: parent, ordered
// children and full name path per node. It is rebuilt from storage on every
// request; construction is one depth-first walk.
type GroupIndex struct {
	entries map[string]indexEntry
	roots   []string
}

// BuildGroupIndex indexes the given forest. Ids are assumed globally unique
// across the forest; a duplicate id silently keeps the first occurrence's
// entry, matching how the stored document is authored.
func BuildGroupIndex(forest []model.Group) *GroupIndex {
	ix := &GroupIndex{entries: make(map[string]indexEntry)}
	for _, root := range forest {
		ix.roots = append(ix.roots, root.ID)
		ix.walk(root, "", nil)
	}
	return ix
}

func (ix *GroupIndex) walk(node model.Group, parentID string, path []string) {
	nodePath := append(append([]string{}, path...), node.Name)
	children := make([]string, 0, len(node.Subgroups))
	for _, sub := range node.Subgroups {
		children = append(children, sub.ID)
	}
	if _, seen := ix.entries[node.ID]; !seen {
		ix.entries[node.ID] = indexEntry{parentID: parentID, children: children, path: nodePath}
	}
	for _, sub := range node.Subgroups {
		ix.walk(sub, node.ID, nodePath)
	}
}

// Contains reports whether id is a node of the indexed forest.
func (ix *GroupIndex) Contains(id string) bool {
	_, ok := ix.entries[id]
	return ok
}

// Roots returns the ids of the forest's top-level groups in stored order.
func (ix *GroupIndex) Roots() []string {
	return append([]string{}, ix.roots...)
}

// Parent returns the parent id of the node, or "" for a root.
func (ix *GroupIndex) Parent(id string) (string, error) {
	e, ok := ix.entries[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownGroup, id)
	}
	return e.parentID, nil
}

// Children returns the node's child ids in stored order.
func (ix *GroupIndex) Children(id string) ([]string, error) {
	e, ok := ix.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, id)
	}
	return append([]string{}, e.children...), nil
}

// Path returns the name path from the node's root down to the node itself.
func (ix *GroupIndex) Path(id string) ([]string, error) {
	e, ok := ix.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, id)
	}
	return append([]string{}, e.path...), nil
}

// Ancestors walks parent links from id to its root, nearest first. An
// unknown id yields an empty slice; census accounting treats stray group
// references on displays as unassigned rather than as errors.
func (ix *GroupIndex) Ancestors(id string) []string {
	var out []string
	current := id
	for {
		e, ok := ix.entries[current]
		if !ok || e.parentID == "" {
			return out
		}
		out = append(out, e.parentID)
		current = e.parentID
	}
}

// Subtree returns id followed by every descendant id, depth-first in stored
// order.
func (ix *GroupIndex) Subtree(id string) []string {
	e, ok := ix.entries[id]
	if !ok {
		return nil
	}
	out := []string{id}
	for _, child := range e.children {
		out = append(out, ix.Subtree(child)...)
	}
	return out
}
