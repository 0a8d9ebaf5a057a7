// Package restserver serves the dashboard pages, chart APIs and static
// assets over HTTP.
package restserver

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chrissnell/citibike-dashboard/internal/dashboard"
	"github.com/chrissnell/citibike-dashboard/internal/log"
	"github.com/chrissnell/citibike-dashboard/pkg/config"
)

// Controller owns the HTTP server
type Controller struct {
	ctx          context.Context
	wg           *sync.WaitGroup
	serverConfig config.ServerData
	Server       http.Server
	FS           fs.FS
	dashboard    *dashboard.Dashboard
	logger       *zap.SugaredLogger
	handlers     *Handlers
}

// NewController creates a new HTTP controller for dash
func NewController(ctx context.Context, wg *sync.WaitGroup, sc config.ServerData, dash *dashboard.Dashboard, logger *zap.SugaredLogger) (*Controller, error) {
	if dash == nil {
		return nil, fmt.Errorf("no dashboard provided")
	}

	ctrl := &Controller{
		ctx:          ctx,
		wg:           wg,
		serverConfig: sc,
		dashboard:    dash,
		logger:       logger,
		FS:           GetAssets(),
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if sc.ListenAddr == "" {
		logger.Info("server.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		ctrl.serverConfig.ListenAddr = "0.0.0.0"
	}
	if sc.Port == 0 {
		logger.Info("server.port not provided; defaulting to 8080")
		ctrl.serverConfig.Port = 8080
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", ctrl.serverConfig.ListenAddr, ctrl.serverConfig.Port)
	ctrl.Server.Handler = ctrl.setupRouter()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the HTTP server and stops it when the controller's
// context is cancelled
func (c *Controller) StartController() error {
	log.Infof("Starting dashboard server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		var err error
		if c.serverConfig.Cert != "" && c.serverConfig.Key != "" {
			err = c.Server.ListenAndServeTLS(c.serverConfig.Cert, c.serverConfig.Key)
		} else {
			err = c.Server.ListenAndServe()
		}
		if err != http.ErrServerClosed {
			log.Errorf("dashboard server error: %v", err)
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		log.Info("Shutting down the dashboard server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("error shutting down dashboard server: %v", err)
		}
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(recoverMiddleware)
	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware)
	router.Use(metricsMiddleware)

	// Pages
	router.HandleFunc("/", c.handlers.RedirectToOverview).Methods(http.MethodGet)
	router.HandleFunc("/page/{page}", c.handlers.ServePage).Methods(http.MethodGet)

	// Chart specs and metadata
	router.HandleFunc("/api/pages", c.handlers.GetPages).Methods(http.MethodGet)
	router.HandleFunc("/api/seasons", c.handlers.GetSeasons).Methods(http.MethodGet)
	router.HandleFunc("/api/charts/daily", c.handlers.GetDailyChart).Methods(http.MethodGet)
	router.HandleFunc("/api/charts/stations", c.handlers.GetStationsChart).Methods(http.MethodGet)
	router.HandleFunc("/api/charts/trip-duration", c.handlers.GetTripDurationChart).Methods(http.MethodGet)

	// Server-rendered charts
	router.HandleFunc("/charts/daily.png", c.handlers.ServeDailyPNG).Methods(http.MethodGet)
	router.HandleFunc("/charts/stations.png", c.handlers.ServeStationsPNG).Methods(http.MethodGet)

	// Pipeline artifacts
	router.HandleFunc("/images/{name}", c.handlers.ServeImage).Methods(http.MethodGet)
	router.HandleFunc("/hotspots/map", c.handlers.ServeTripMap).Methods(http.MethodGet)

	router.HandleFunc("/healthz", c.handlers.Healthz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Static file serving
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(c.FS))))

	return router
}
