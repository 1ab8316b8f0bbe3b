package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Vantage-Outdoor-LLC/argus/internal/db"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api/admin/control/packets"
	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

type DisplayController struct{ store db.Store }

func DisplayModule(store db.Store) api.Module {
	ctl := &DisplayController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/displays", ctl.listDisplays)
		c.POST("/displays", ctl.createDisplay)
		c.PUT("/displays/:id", ctl.updateDisplay)
		c.DELETE("/displays/:id", ctl.deleteDisplay)
	})
}

// GET /api/admin/displays
func (dc *DisplayController) listDisplays(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	displays, err := dc.store.ListDisplays()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return displays, nil
}

// POST /api/admin/displays
func (dc *DisplayController) createDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var req packets.CreateDisplayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	installed, err := parseDateOr(req.InstalledDate, time.Now())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	id, err := dc.store.NextDisplayID(installed)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	display := model.Display{
		ID:             id,
		GroupID:        req.GroupID,
		Address:        req.Address,
		GPSCoordinates: req.GPSCoordinates,
		GoogleMapsLink: req.GoogleMapsLink,
		PhotoURL:       req.PhotoURL,
		InstalledDate:  installed,
		InstallerID:    req.InstallerID,
		InstallerName:  req.InstallerName,
		Status:         req.Status,
		Impressions:    100000,
		CreatedBy:      req.CreatedBy,
		CreatedAt:      time.Now(),
	}
	if display.Status == "" {
		display.Status = "active"
	}
	if req.Impressions != nil {
		display.Impressions = *req.Impressions
	}
	if display.CreatedBy == "" {
		display.CreatedBy = "ADMIN-001"
	}

	if err := dc.store.CreateDisplay(display); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return display, nil
}

// PUT /api/admin/displays/:id
func (dc *DisplayController) updateDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id := ctx.Param("id")
	var req packets.UpdateDisplayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	display, err := dc.store.GetDisplayByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "display not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}

	if req.GroupID != nil {
		display.GroupID = *req.GroupID
	}
	if req.Address != nil {
		display.Address = req.Address
	}
	if req.GPSCoordinates != nil {
		display.GPSCoordinates = req.GPSCoordinates
	}
	if req.GoogleMapsLink != nil {
		display.GoogleMapsLink = req.GoogleMapsLink
	}
	if req.PhotoURL != nil {
		display.PhotoURL = req.PhotoURL
	}
	if req.InstallerID != nil {
		display.InstallerID = req.InstallerID
	}
	if req.InstallerName != nil {
		display.InstallerName = req.InstallerName
	}
	if req.Status != nil {
		display.Status = *req.Status
	}
	if req.Impressions != nil {
		display.Impressions = *req.Impressions
	}

	if err := dc.store.UpdateDisplay(*display); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return display, nil
}

// DELETE /api/admin/displays/:id
func (dc *DisplayController) deleteDisplay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id := ctx.Param("id")
	if err := dc.store.DeleteDisplay(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "display not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return gin.H{"deleted": true}, nil
}
