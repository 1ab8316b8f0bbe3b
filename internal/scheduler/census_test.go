package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

func displaysIn(groupIDs ...string) []model.Display {
	out := make([]model.Display, 0, len(groupIDs))
	for i, gid := range groupIDs {
		out = append(out, model.Display{ID: string(rune('A' + i)), GroupID: gid})
	}
	return out
}

func TestComputeCensusCountsAncestors(t *testing.T) {
	ix := BuildGroupIndex(testForest())
	census := ComputeCensus(ix, displaysIn("S2GP-001-001-001", "S2GP-001-001-001", "S1GP-001-002"))

	assert.Equal(t, 2, census["S2GP-001-001-001"])
	assert.Equal(t, 2, census["S1GP-001-001"])
	assert.Equal(t, 1, census["S1GP-001-002"])
	// root sees its whole subtree
	assert.Equal(t, 3, census["GP-001"])
	assert.Equal(t, 0, census["GP-002"])
}

func TestComputeCensusIgnoresUnassigned(t *testing.T) {
	ix := BuildGroupIndex(testForest())
	census := ComputeCensus(ix, []model.Display{
		{ID: "a", GroupID: ""},
		{ID: "b", GroupID: "GP-does-not-exist"},
	})
	assert.Empty(t, census)
}

func TestExpandSelectionParentBearsViaChild(t *testing.T) {
	// Parent's only displays live under the child. Ancestor counting makes
	// the parent's census positive too, so both nodes are bearing; each
	// represents its own capacity pool.
	ix := BuildGroupIndex(testForest())
	census := ComputeCensus(ix, displaysIn("S1GP-001-001"))

	bearing, err := ExpandSelection([]string{"GP-001"}, ix, census)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"GP-001", "S1GP-001-001"}, bearing)
}

func TestExpandSelectionParentAndChild(t *testing.T) {
	// Parent with direct displays plus a bearing child: both are returned.
	ix := BuildGroupIndex(testForest())
	dd := displaysIn("GP-001", "S1GP-001-001")

	bearing, err := ExpandSelection([]string{"GP-001"}, ix, ComputeCensus(ix, dd))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"GP-001", "S1GP-001-001"}, bearing)
}

func TestExpandSelectionDeduplicates(t *testing.T) {
	// Selecting both the parent and a node already inside its subtree must
	// not list any bearing group twice.
	ix := BuildGroupIndex(testForest())
	census := ComputeCensus(ix, displaysIn("S1GP-001-001"))

	bearing, err := ExpandSelection([]string{"GP-001", "S1GP-001-001"}, ix, census)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"GP-001", "S1GP-001-001"}, bearing)
}

func TestExpandSelectionErrors(t *testing.T) {
	ix := BuildGroupIndex(testForest())
	census := ComputeCensus(ix, nil)

	_, err := ExpandSelection([]string{"GP-404"}, ix, census)
	assert.ErrorIs(t, err, ErrUnknownGroup)

	_, err = ExpandSelection([]string{"GP-002"}, ix, census)
	assert.ErrorIs(t, err, ErrNoDisplaysInSelection)
}

func TestExpandSelectionIsFixedPoint(t *testing.T) {
	// Every returned id bears displays; expanding the result again changes
	// nothing.
	ix := BuildGroupIndex(testForest())
	census := ComputeCensus(ix, displaysIn("GP-001", "S2GP-001-001-001", "S1GP-001-002"))

	bearing, err := ExpandSelection([]string{"GP-001"}, ix, census)
	require.NoError(t, err)
	for _, id := range bearing {
		assert.Positive(t, census[id])
	}

	again, err := ExpandSelection(bearing, ix, census)
	require.NoError(t, err)
	assert.ElementsMatch(t, bearing, again)
}
