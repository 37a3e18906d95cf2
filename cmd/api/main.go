package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/field-service-api/internal/audit"
	"github.com/BruksfildServices01/field-service-api/internal/auth"
	"github.com/BruksfildServices01/field-service-api/internal/config"
	dbpkg "github.com/BruksfildServices01/field-service-api/internal/db"
	"github.com/BruksfildServices01/field-service-api/internal/logging"
	"github.com/BruksfildServices01/field-service-api/internal/notify"
	"github.com/BruksfildServices01/field-service-api/internal/routes"
	"github.com/BruksfildServices01/field-service-api/internal/storage"
	"github.com/BruksfildServices01/field-service-api/internal/timezone"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Setup(cfg.LogLevel, cfg.LogPretty)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	sender, closeSender, err := newSender(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("sms sender unavailable")
	}
	defer closeSender()

	notifier := notify.NewAsyncDispatcher(sender, 256)
	defer notifier.Close()

	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Issuer:   auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Notifier: notifier,
		Audit:    auditDispatcher,
		Clock:    timezone.NewClock(cfg.BusinessTimezone),
	}
	if cfg.S3Enabled() {
		deps.Store = storage.NewS3Store(cfg.S3)
	} else {
		log.Warn().Msg("S3_BUCKET not set, photo uploads disabled")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

// newSender picks the SMS transport named by SMS_PROVIDER.
func newSender(cfg *config.Config) (notify.Sender, func(), error) {
	noop := func() {}

	switch strings.ToLower(cfg.SMS.Provider) {
	case "http":
		return notify.NewHTTPSender(cfg.SMS.APIURL, cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.From), noop, nil
	case "redis":
		s, err := notify.NewRedisSender(cfg.Redis.URL, cfg.SMS.RedisQueue)
		if err != nil {
			return nil, noop, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis")
			}
		}, nil
	default:
		return notify.LogSender{}, noop, nil
	}
}
