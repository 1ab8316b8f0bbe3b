package test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

func TestSaveForestAssignsIDs(t *testing.T) {
	router, _, token := newTestEnv(t)

	w := doJSON(router, http.MethodPost, "/api/admin/groups", token, []map[string]any{
		{"name": "Downtown", "subgroups": []map[string]any{
			{"name": "Downtown North"},
		}},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[struct {
		Groups []model.Group `json:"groups"`
	}](t, w)
	if assert.Len(t, resp.Groups, 1) {
		root := resp.Groups[0]
		assert.True(t, strings.HasPrefix(root.ID, "GP-"), "root id %q", root.ID)
		if assert.Len(t, root.Subgroups, 1) {
			assert.True(t, strings.HasPrefix(root.Subgroups[0].ID, "S1GP-"), "subgroup id %q", root.Subgroups[0].ID)
		}
	}

	w = doJSON(router, http.MethodGet, "/api/admin/groups", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	forest := decodeBody[[]model.Group](t, w)
	assert.Len(t, forest, 1)
}

func TestDeleteGroupSubtree(t *testing.T) {
	router, store, token := newTestEnv(t)
	seedForest(t, store)

	// give the doomed subgroup a booking ledger
	err := store.SaveSchedules([]model.GroupSchedule{
		{GroupID: "S1GP-001-001", Bookings: []model.Booking{
			{CampaignID: "AD-010124-001", StartDate: today(), EndDate: today().AddDate(0, 0, 7), DurationSeconds: 5},
		}},
	})
	assert.NoError(t, err)

	w := doJSON(router, http.MethodDelete, "/api/admin/groups/S1GP-001-001", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[packets.DeleteGroupResponse](t, w)
	assert.Equal(t, []string{"S1GP-001-001"}, resp.RemovedIDs)
	assert.Equal(t, 1, resp.Reassigned)

	// display unassigned
	d, err := store.GetDisplayByID("DS-010124-001")
	assert.NoError(t, err)
	assert.Empty(t, d.GroupID)

	// ledger dropped
	schedules, err := store.LoadSchedules()
	assert.NoError(t, err)
	assert.Empty(t, schedules)

	// subtree gone from the forest
	forest, err := store.LoadGroupForest()
	assert.NoError(t, err)
	if assert.Len(t, forest, 2) {
		assert.Empty(t, forest[0].Subgroups)
	}
}

func TestDeleteGroupNotFound(t *testing.T) {
	router, store, token := newTestEnv(t)
	seedForest(t, store)

	w := doJSON(router, http.MethodDelete, "/api/admin/groups/GP-999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
