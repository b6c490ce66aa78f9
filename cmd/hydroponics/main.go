// Command hydroponics serves the hydroponics monitoring API.
//
// @title                       Hydroponics API
// @version                     1.0
// @description                 Hydroponic systems, measurements, charts and live readings.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "hydroponics/docs"
	"hydroponics/internal/config"
	"hydroponics/internal/handlers"
	"hydroponics/internal/logger"
	"hydroponics/internal/metrics"
	"hydroponics/internal/repository"
	"hydroponics/internal/repository/db"
	"hydroponics/internal/server"
	"hydroponics/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	// load configs/config.yml, HYDRO_* env on top
	cfg, err := config.Load("configs", ".")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.GetWithFormat(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if cfg.UsesDevSigningKey() {
		log.Warnw("using the built-in development signing key; set HYDRO_AUTH_SIGNING_KEY")
	}
	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	m := metrics.New()
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		SigningKey:      cfg.Auth.SigningKey,
		TokenTTL:        cfg.Auth.TokenTTL,
		ChartLayout:     cfg.Chart.LabelLayout,
		ChartLocation:   cfg.ChartLocation(),
		OnSimulatorTick: simulatorObserver(m, log),
	})
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		PageSize:    cfg.Pagination.PageSize,
		MaxPageSize: cfg.Pagination.MaxPageSize,
		Metrics:     m,
	})

	srv := server.New(server.Config{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("http_server_started", "port", cfg.Port)
		return srv.Run(cfg.Port, apiHandler.InitRoutes())
	})
	if cfg.Simulator.Enabled {
		g.Go(func() error {
			log.Infow("simulator_started", "interval", cfg.Simulator.Interval)
			services.Simulator.Run(gctx, cfg.Simulator.Interval)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorw("server stopped with error", "err", err)
		os.Exit(1)
	}
	log.Infow("server stopped")
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}

// simulatorObserver logs failed ticks and feeds the simulator metrics.
func simulatorObserver(m *metrics.Metrics, log *logger.Logger) service.TickObserver {
	return func(stored int, took time.Duration, err error) {
		m.ObserveSimulatorTick(took)
		m.MeasurementRecorded("simulator", stored)
		if err != nil {
			log.Errorw("simulator_tick_failed", "stored", stored, "err", err)
			return
		}
		log.Debugw("simulator_tick", "stored", stored, "took", took)
	}
}
