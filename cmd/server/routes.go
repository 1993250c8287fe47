package main

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/minbar/internal/config"
	"github.com/Nixie-Tech-LLC/minbar/internal/display"
	"github.com/Nixie-Tech-LLC/minbar/internal/http/api"
	adminapi "github.com/Nixie-Tech-LLC/minbar/internal/http/api/admin/endpoints"
	displayapi "github.com/Nixie-Tech-LLC/minbar/internal/http/api/display/endpoints"
	"github.com/Nixie-Tech-LLC/minbar/internal/prayertimes"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, clock *display.Clock, provider prayertimes.Provider, tmpl *template.Template) {
	r.SetHTMLTemplate(tmpl)
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{},
		displayapi.PageModule(clock),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/display",
	},
		displayapi.DisplayModule(clock, provider),
	)

	if !cfg.AdminEnabled() {
		log.Info().Msg("admin API disabled, set MINBAR_ADMIN_PASSWORD_HASH to enable it")
		return
	}

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
	},
		adminapi.AuthPublicModule(cfg.JWTSecret, cfg.AdminPasswordHash),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
	},
		adminapi.MessagesModule(clock),
	)
}
