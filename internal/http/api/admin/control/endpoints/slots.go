package endpoints

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vantage-Outdoor-LLC/argus/internal/db"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
	"github.com/Vantage-Outdoor-LLC/argus/internal/scheduler"
)

type SlotController struct{ store db.Store }

func SlotModule(store db.Store) api.Module {
	ctl := &SlotController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/slots/availability", ctl.availability)
		c.GET("/slots/next", ctl.next)
	})
}

// POST /api/admin/slots/availability
//
// Read-only feasibility probe: same search as booking, nothing committed.
func (sc *SlotController) availability(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var req packets.AvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	startFrom, err := parseDateOr(req.StartFrom, time.Now())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	weeks := req.Weeks
	if weeks < 1 {
		weeks = 1
	}
	return sc.probe(ctx, req.GroupIDs, req.DurationSeconds, weeks, startFrom)
}

// GET /api/admin/slots/next?groupIds=GP-001,GP-002&durationSeconds=5&weeks=2
//
// Query-string variant for quick probing.
func (sc *SlotController) next(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	groupIDs := parseGroupIDs(ctx.Query("groupIds"))
	if len(groupIDs) == 0 {
		groupIDs = parseGroupIDs(ctx.Query("groupId"))
	}
	if len(groupIDs) == 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "groupIds is required"}
	}

	duration, _ := strconv.Atoi(ctx.Query("durationSeconds"))
	if duration <= 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "durationSeconds must be > 0"}
	}
	weeks, _ := strconv.Atoi(ctx.Query("weeks"))
	if weeks < 1 {
		weeks = 1
	}
	startFrom, err := parseDateOr(ctx.Query("startFrom"), time.Now())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	return sc.probe(ctx, groupIDs, duration, weeks, startFrom)
}

func (sc *SlotController) probe(ctx *gin.Context, groupIDs []string, duration, weeks int, startFrom time.Time) (any, *api.APIError) {
	var resp packets.AvailabilityResponse
	apiErr := bookingCycle(ctx, sc.store, func(p *planning) *api.APIError {
		pruneAndPersist(sc.store, p, time.Now())

		bearing, err := scheduler.ExpandSelection(groupIDs, p.index, p.census)
		if err != nil {
			return selectionError(err)
		}

		resp = packets.AvailabilityResponse{
			SlotSeconds:      scheduler.WeeklyCapacitySeconds,
			Weeks:            weeks,
			DurationSeconds:  duration,
			ExpandedGroupIDs: bearing,
			Groups:           []packets.GroupSlotResponse{},
		}

		slot, ok := scheduler.Availability(p.store, bearing, duration, weeks, startFrom)
		if !ok {
			return nil
		}
		earliest := slot.Start.Format(dateLayout)
		resp.EarliestStartDate = &earliest
		resp.FitsNow = slot.Start.Equal(scheduler.CivilDay(startFrom))
		for _, g := range slot.PerGroup {
			resp.Groups = append(resp.Groups, packets.GroupSlotResponse{
				GroupID:           g.GroupID,
				FreeSecondsByWeek: g.FreeSecondsByWeek,
				HasDisplays:       p.census[g.GroupID] > 0,
				TotalDisplays:     p.census[g.GroupID],
			})
		}
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return resp, nil
}

func parseGroupIDs(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
