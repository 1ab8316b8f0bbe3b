package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vantage-Outdoor-LLC/argus/internal/db"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
	"github.com/Vantage-Outdoor-LLC/argus/internal/scheduler"
)

type GroupController struct{ store db.Store }

func GroupModule(store db.Store) api.Module {
	ctl := &GroupController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/groups", ctl.getForest)
		c.POST("/groups", ctl.saveForest)
		c.DELETE("/groups/:id", ctl.deleteSubtree)
	})
}

// GET /api/admin/groups
func (g *GroupController) getForest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	forest, err := g.store.LoadGroupForest()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return forest, nil
}

// POST /api/admin/groups
//
// Replaces the whole forest, as the dashboard edits it. Nodes without an id
// are new and get one generated; existing ids are preserved.
func (g *GroupController) saveForest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var forest []model.Group
	if err := ctx.ShouldBindJSON(&forest); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	assignGroupIDs(forest, nil)

	if err := g.store.SaveGroupForest(forest); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return gin.H{"groups": forest}, nil
}

func assignGroupIDs(siblings []model.Group, parent *model.Group) {
	for i := range siblings {
		if siblings[i].ID == "" {
			siblings[i].ID = db.NextGroupID(siblings, parent)
		}
		assignGroupIDs(siblings[i].Subgroups, &siblings[i])
	}
}

// DELETE /api/admin/groups/:id
//
// Removes the subtree, unassigns every display under it and drops the
// subtree's booking ledgers.
func (g *GroupController) deleteSubtree(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id := ctx.Param("id")

	forest, err := g.store.LoadGroupForest()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	ix := scheduler.BuildGroupIndex(forest)
	if !ix.Contains(id) {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "group not found"}
	}
	removedIDs := ix.Subtree(id)
	newForest := removeGroupByID(forest, id)

	var reassigned int
	apiErr := bookingCycle(ctx, g.store, func(p *planning) *api.APIError {
		if err := g.store.SaveGroupForest(newForest); err != nil {
			return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
		}
		if reassigned, err = g.store.UnassignDisplays(removedIDs); err != nil {
			return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
		}
		if p.store.RemoveGroups(removedIDs) {
			if err := g.store.SaveSchedules(p.store.Snapshot()); err != nil {
				return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
			}
		}
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}

	return packets.DeleteGroupResponse{RemovedIDs: removedIDs, Reassigned: reassigned}, nil
}

func removeGroupByID(list []model.Group, id string) []model.Group {
	out := make([]model.Group, 0, len(list))
	for _, g := range list {
		if g.ID == id {
			continue
		}
		g.Subgroups = removeGroupByID(g.Subgroups, id)
		out = append(out, g)
	}
	return out
}
