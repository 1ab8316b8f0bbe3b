package scheduler

import (
	"fmt"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

// Census maps a group id to the number of displays attached to it or to any
// of its descendants.
type Census map[string]int

// ComputeCensus tallies displays per group. Each assigned display bumps its
// own group and every ancestor, so an internal node's count covers its whole
// subtree. Displays with an empty or unknown group id are skipped; being
// unassigned is a legitimate state, not an error.
func ComputeCensus(ix *GroupIndex, displays []model.Display) Census {
	counts := make(Census)
	for _, d := range displays {
		if d.GroupID == "" || !ix.Contains(d.GroupID) {
			continue
		}
		counts[d.GroupID]++
		for _, ancestor := range ix.Ancestors(d.GroupID) {
			counts[ancestor]++
		}
	}
	return counts
}

// ExpandSelection maps a user-chosen set of (possibly internal) group ids to
// the concrete display-bearing groups capacity must be booked against: every
// node in any selected subtree whose census is positive. A parent and its
// descendant can both be bearing; each represents an independently booked
// capacity pool, and their census counts intentionally overlap.
//
// Returns ErrUnknownGroup if a selected id is not in the index, and
// ErrNoDisplaysInSelection if no bearing node is found.
func ExpandSelection(selected []string, ix *GroupIndex, census Census) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, id := range selected {
		if !ix.Contains(id) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, id)
		}
		for _, node := range ix.Subtree(id) {
			if census[node] > 0 && !seen[node] {
				seen[node] = true
				out = append(out, node)
			}
		}
	}
	if len(out) == 0 {
		return nil, ErrNoDisplaysInSelection
	}
	return out, nil
}
