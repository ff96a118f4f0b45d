package main

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/charlesng35/assetdesk/internal/app"
	"github.com/charlesng35/assetdesk/internal/guard"
	"github.com/charlesng35/assetdesk/internal/middleware"
	"github.com/charlesng35/assetdesk/internal/monitoring"
)

const (
	indexFile     = "index.html"
	rateLimitIdle = 10 * time.Minute
	probeTimeout  = 3 * time.Second
)

func setReleaseMode() {
	gin.SetMode(gin.ReleaseMode)
}

// routesFromConfig overlays configured paths on the default dashboard route table.
func routesFromConfig(cfg app.ServerConfig) guard.Routes {
	routes := guard.DefaultRoutes()
	if p := strings.TrimSpace(cfg.LoginPath); p != "" && p != routes.LoginPath {
		routes.GuestOnly = append(routes.GuestOnly, p)
		routes.LoginPath = p
	}
	if p := strings.TrimSpace(cfg.HomePath); p != "" {
		routes.HomePath = p
	}
	for _, p := range cfg.PublicRoutes {
		if p = strings.TrimSpace(p); p != "" {
			routes.Public = append(routes.Public, p)
		}
	}
	return routes
}

// newRouter builds the edge: it guards dashboard navigations and serves the
// dashboard shell. Data requests go from the client straight to the backends.
func newRouter(cfg *app.Config, assets fs.FS) (*gin.Engine, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if assets == nil {
		return nil, errors.New("dashboard assets are required")
	}
	index, err := fs.ReadFile(assets, indexFile)
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.SecurityHeaders(middleware.SecurityPolicy{
			ConnectSrc: []string{cfg.Services.AuthURL, cfg.Services.EquipmentURL},
			HSTS:       cfg.Cookies.Secure,
		}),
	)
	if cfg.Server.RateLimit > 0 {
		r.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.Burst, rateLimitIdle))
	}
	r.Use(middleware.RouteGuard(routesFromConfig(cfg.Server)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	health := backendMonitor(cfg)
	r.GET("/readyz", func(c *gin.Context) {
		report := health.Evaluate(c.Request.Context())
		status := http.StatusOK
		if !report.Success {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.StaticFS("/static", http.FS(static))

	serveIndex := func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	}
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			middleware.NotFoundHandler(c)
			return
		}
		serveIndex(c)
	})
	r.NoMethod(middleware.MethodNotAllowedHandler)

	return r, nil
}

// backendMonitor probes the services the dashboard calls directly.
func backendMonitor(cfg *app.Config) *monitoring.Monitor {
	m := monitoring.NewMonitor(probeTimeout)
	client := &http.Client{Timeout: probeTimeout}
	m.Register(monitoring.HTTPProbe("auth", cfg.Services.AuthURL, client))
	if cfg.Services.EquipmentURL != cfg.Services.AuthURL {
		m.Register(monitoring.HTTPProbe("equipment", cfg.Services.EquipmentURL, client))
	}
	return m
}
