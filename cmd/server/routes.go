package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Vantage-Outdoor-LLC/argus/internal/config"
	"github.com/Vantage-Outdoor-LLC/argus/internal/db"
	"github.com/Vantage-Outdoor-LLC/argus/internal/http/api"
	authapi "github.com/Vantage-Outdoor-LLC/argus/internal/http/api/admin/auth/endpoints"
	adminapi "github.com/Vantage-Outdoor-LLC/argus/internal/http/api/admin/control/endpoints"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		authapi.AuthPublicModule(cfg.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.SecretKey,
		Store:     store,
	},
		// control modules
		adminapi.GroupModule(store),
		adminapi.DisplayModule(store),
		adminapi.CampaignModule(store),
		adminapi.SlotModule(store),
		// session endpoints that require auth
		authapi.AuthSessionModule(cfg.SecretKey, store),
	)
}
