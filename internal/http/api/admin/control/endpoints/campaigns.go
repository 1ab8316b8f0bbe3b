package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Vantage-Outdoor-LLC/argus/internal/db"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/middleware"
	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
	"github.com/Vantage-Outdoor-LLC/argus/internal/scheduler"
)

type CampaignController struct{ store db.Store }

func CampaignModule(store db.Store) api.Module {
	ctl := &CampaignController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/campaigns", ctl.listCampaigns)
		c.POST("/campaigns", ctl.createCampaign)
		c.PUT("/campaigns/:id", ctl.updateCampaign)
		c.DELETE("/campaigns/:id", ctl.deleteCampaign)
	})
}

func campaignResponse(c model.Campaign, now time.Time) packets.CampaignResponse {
	return packets.CampaignResponse{
		Campaign:      c,
		Status:        c.Status(now),
		RemainingDays: c.RemainingDays(now),
	}
}

// GET /api/admin/campaigns
//
// Listing doubles as the reconciliation trigger: expired bookings are pruned
// and queued campaigns retried before the list is rendered. Reconciliation
// is best-effort; a persistence failure there is logged and the unpromoted
// view served, it never fails the read.
func (cc *CampaignController) listCampaigns(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	campaigns, err := cc.store.ListCampaigns()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	now := time.Now()

	serve := campaigns
	lockErr := withBookingLock(ctx, func() error {
		p, err := loadPlanning(cc.store)
		if err != nil {
			return err
		}
		attempt := make([]model.Campaign, len(campaigns))
		copy(attempt, campaigns)

		res := scheduler.ReconcileQueued(p.store, attempt, now)
		if res.StoreChanged {
			if err := cc.store.SaveSchedules(p.store.Snapshot()); err != nil {
				return err
			}
		}
		if res.CampaignsChanged {
			if err := cc.store.SaveCampaigns(res.Campaigns); err != nil {
				// bookings are durable but the promotions are not; serve the
				// promoted view and let the operator reconcile storage
				log.Error().Err(err).Msg("failed to persist promoted campaigns")
			}
		}
		serve = res.Campaigns
		return nil
	})
	if lockErr != nil {
		log.Error().Err(lockErr).Msg("campaign reconciliation skipped")
	}

	out := make([]packets.CampaignResponse, 0, len(serve))
	for _, c := range serve {
		out = append(out, campaignResponse(c, now))
	}
	return out, nil
}

// POST /api/admin/campaigns
//
// Expands the selected groups to their display-bearing set and books the
// earliest feasible slot. When nothing fits within the horizon the campaign
// is stored queued and retried on subsequent listings.
func (cc *CampaignController) createCampaign(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var req packets.CreateCampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	now := time.Now()
	startFrom, err := parseDateOr(req.StartDate, now)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	weeks := req.Weeks
	if weeks < 1 {
		weeks = 1
	}
	tier := req.DurationTier
	if tier == "" {
		tier = "5s"
	}
	duration := tierSeconds(tier)
	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = "ADMIN-001"
	}

	var campaign model.Campaign
	apiErr := bookingCycle(ctx, cc.store, func(p *planning) *api.APIError {
		pruneAndPersist(cc.store, p, now)

		bearing, err := scheduler.ExpandSelection(req.GroupIDs, p.index, p.census)
		if err != nil {
			return selectionError(err)
		}

		id, err := cc.store.NextCampaignID(startFrom)
		if err != nil {
			return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
		}

		campaign = model.Campaign{
			ID:              id,
			Name:            req.Name,
			CompanyName:     req.CompanyName,
			ContactNo:       req.ContactNo,
			MediaURL:        req.MediaURL,
			MediaType:       req.MediaType,
			DurationTier:    tier,
			DurationSeconds: duration,
			Weeks:           weeks,
			RequestedGroups: bearing,
			CreatedBy:       createdBy,
			CreatedAt:       now,
		}

		numDisplays := 0
		for _, gid := range bearing {
			numDisplays += p.census[gid]
		}
		price := computePricing(tier, weeks, numDisplays, req.CustomPrice)
		campaign.CalculatedPrice = price.Calculated
		campaign.CustomPrice = req.CustomPrice
		campaign.FinalPrice = price.Final
		campaign.Discount = price.Discount
		campaign.DiscountPercent = price.DiscountPercent

		res := scheduler.BookEarliest(p.store, id, bearing, duration, weeks, startFrom)
		if res.Booked {
			start, end := res.StartDate, res.EndDate
			campaign.StartDate = &start
			campaign.EndDate = &end
			campaign.Placements = res.Placements(bearing, duration)
			if err := cc.store.SaveSchedules(p.store.Snapshot()); err != nil {
				return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
			}
		} else {
			campaign.Queued = true
		}

		if err := cc.store.CreateCampaign(campaign); err != nil {
			if res.Booked {
				// roll the bookings back so a failed record does not leak
				// capacity; best-effort, the next prune catches stragglers
				p.store.RemoveByCampaign(id)
				if rbErr := cc.store.SaveSchedules(p.store.Snapshot()); rbErr != nil {
					log.Error().Err(rbErr).Str("campaign_id", id).Msg("failed to roll back bookings")
				}
			}
			return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
		}

		middleware.NotifyDisplays(displaysInGroups(p.displays, bearing), "campaign_changed", id)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return campaignResponse(campaign, now), nil
}

// PUT /api/admin/campaigns/:id
//
// An edit that touches scheduling parameters is remove-then-rebook: the old
// placements are dropped and the campaign competes for capacity afresh.
func (cc *CampaignController) updateCampaign(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id := ctx.Param("id")
	var req packets.UpdateCampaignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	existing, err := cc.store.GetCampaignByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "campaign not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	now := time.Now()
	campaign := *existing
	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.CompanyName != nil {
		campaign.CompanyName = req.CompanyName
	}
	if req.ContactNo != nil {
		campaign.ContactNo = req.ContactNo
	}
	if req.MediaURL != nil {
		campaign.MediaURL = req.MediaURL
	}
	if req.MediaType != nil {
		campaign.MediaType = req.MediaType
	}
	if req.DurationTier != nil {
		campaign.DurationTier = *req.DurationTier
		campaign.DurationSeconds = tierSeconds(*req.DurationTier)
	}
	if req.Weeks != nil && *req.Weeks >= 1 {
		campaign.Weeks = *req.Weeks
	}
	if req.CustomPrice != nil {
		campaign.CustomPrice = req.CustomPrice
	}

	selection := campaign.RequestedGroups
	if len(req.GroupIDs) > 0 {
		selection = req.GroupIDs
	}
	startFrom := scheduler.CivilDay(now)
	if req.StartDate != nil {
		if startFrom, err = parseDateOr(*req.StartDate, now); err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
		}
	} else if campaign.StartDate != nil {
		startFrom = scheduler.CivilDay(*campaign.StartDate)
	}

	apiErr := bookingCycle(ctx, cc.store, func(p *planning) *api.APIError {
		pruneAndPersist(cc.store, p, now)

		bearing, err := scheduler.ExpandSelection(selection, p.index, p.census)
		if err != nil {
			return selectionError(err)
		}
		campaign.RequestedGroups = bearing

		numDisplays := 0
		for _, gid := range bearing {
			numDisplays += p.census[gid]
		}
		price := computePricing(campaign.DurationTier, campaign.Weeks, numDisplays, campaign.CustomPrice)
		campaign.CalculatedPrice = price.Calculated
		campaign.FinalPrice = price.Final
		campaign.Discount = price.Discount
		campaign.DiscountPercent = price.DiscountPercent

		p.store.RemoveByCampaign(id)
		res := scheduler.BookEarliest(p.store, id, bearing, campaign.DurationSeconds, campaign.Weeks, startFrom)
		if res.Booked {
			start, end := res.StartDate, res.EndDate
			campaign.StartDate = &start
			campaign.EndDate = &end
			campaign.Placements = res.Placements(bearing, campaign.DurationSeconds)
			campaign.Queued = false
		} else {
			campaign.StartDate = nil
			campaign.EndDate = nil
			campaign.Placements = nil
			campaign.Queued = true
		}

		if err := cc.store.SaveSchedules(p.store.Snapshot()); err != nil {
			return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
		}
		if err := cc.store.UpdateCampaign(campaign); err != nil {
			return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
		}

		middleware.NotifyDisplays(displaysInGroups(p.displays, bearing), "campaign_changed", id)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return campaignResponse(campaign, now), nil
}

// DELETE /api/admin/campaigns/:id
func (cc *CampaignController) deleteCampaign(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id := ctx.Param("id")

	existing, err := cc.store.GetCampaignByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "campaign not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	apiErr := bookingCycle(ctx, cc.store, func(p *planning) *api.APIError {
		if p.store.RemoveByCampaign(id) {
			if err := cc.store.SaveSchedules(p.store.Snapshot()); err != nil {
				return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
			}
		}
		if err := cc.store.DeleteCampaign(id); err != nil {
			return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
		}
		middleware.NotifyDisplays(displaysInGroups(p.displays, existing.RequestedGroups), "campaign_removed", id)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return gin.H{"deleted": true}, nil
}

// bookingCycle runs fn with a fresh planning context under the booking lock.
func bookingCycle(ctx *gin.Context, store db.Store, fn func(p *planning) *api.APIError) *api.APIError {
	var apiErr *api.APIError
	err := withBookingLock(ctx, func() error {
		p, err := loadPlanning(store)
		if err != nil {
			return err
		}
		apiErr = fn(p)
		return nil
	})
	if err != nil {
		return &api.APIError{Code: http.StatusServiceUnavailable, Message: err.Error()}
	}
	return apiErr
}

func selectionError(err error) *api.APIError {
	switch {
	case errors.Is(err, scheduler.ErrUnknownGroup):
		return &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, scheduler.ErrNoDisplaysInSelection):
		return &api.APIError{Code: http.StatusBadRequest, Message: "selected groups have no displays in subtree"}
	default:
		return &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
}
