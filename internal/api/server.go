// Package api assembles the HTTP surface of the price matcher: the Echo
// router, its middleware chain, the Huma operations and the probe and
// metrics endpoints.
package api

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/handlers"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/middleware"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/engine"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/sources"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/store"
)

const apiTitle = "Price Matcher API"

// Deps holds the collaborators the HTTP surface is built from. Store may be
// nil, in which case the result endpoints are not registered and readiness
// always succeeds.
type Deps struct {
	Engine    *engine.Engine
	Store     store.Store
	SourceIDs []string
	Limiters  map[string]*sources.RateLimiter
	Logger    *slog.Logger
	Version   string
}

// NewRouter builds the Echo instance serving every endpoint.
func NewRouter(d Deps) *echo.Echo {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	var pinger handlers.Pinger
	if d.Store != nil {
		pinger = d.Store
	}
	health := handlers.NewHealthHandler(pinger)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	version := d.Version
	if version == "" {
		version = "dev"
	}
	humaAPI := humaecho.New(e, huma.DefaultConfig(apiTitle, version))

	handlers.RegisterExtractRoutes(humaAPI, handlers.NewExtractHandler(d.Engine.Extractor()))
	handlers.RegisterPriceRoutes(humaAPI, handlers.NewPriceHandler(d.Engine, d.Engine.Aggregator(), log))
	handlers.RegisterSourceRoutes(humaAPI, handlers.NewSourcesHandler(d.SourceIDs, d.Limiters))
	if d.Store != nil {
		handlers.RegisterResultRoutes(humaAPI, handlers.NewResultsHandler(d.Store))
	}

	return e
}
