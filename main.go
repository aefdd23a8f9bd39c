package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equipment_availability/app"
	"equipment_availability/config"
	"equipment_availability/jobs"
	"equipment_availability/routes"

	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	application := app.MustNew(cfg)
	defer application.Close()
	app.BootstrapAdminToken(&application.Config)

	routes.RegisterRoutes(application.Router, application)

	// 定时扫描未来 N 天的短缺
	if cfg.ScanCron != "" {
		scan := jobs.NewShortageScan(application.Checker, application.Publisher, cfg.ScanHorizonDays)
		if err := scan.Start(cfg.ScanCron); err != nil {
			log.Fatal().Err(err).Msg("shortage scan")
		}
		defer scan.Stop()
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: application.Router}
	go func() {
		log.Info().Str("addr", srv.Addr).Str("strategy", application.Checker.Strategy()).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Warn().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
