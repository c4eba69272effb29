// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	applicanthandler "intake-gateway/internal/applicant/handler"
	applicantservice "intake-gateway/internal/applicant/service"
	applicantstore "intake-gateway/internal/applicant/store"
	"intake-gateway/internal/email"
	httpapi "intake-gateway/internal/http"
	"intake-gateway/internal/notify"
	otphandler "intake-gateway/internal/otp/handler"
	otpservice "intake-gateway/internal/otp/service"
	otpstore "intake-gateway/internal/otp/store"
	paymenthandler "intake-gateway/internal/payment/handler"
	paymentservice "intake-gateway/internal/payment/service"
	paymentstore "intake-gateway/internal/payment/store"
	"intake-gateway/internal/platform/config"
	"intake-gateway/internal/platform/events"
	"intake-gateway/internal/platform/httpserver"
	"intake-gateway/internal/platform/logger"
	"intake-gateway/internal/platform/metrics"
	"intake-gateway/internal/platform/postgres"
	platformredis "intake-gateway/internal/platform/redis"
)

func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("config parse failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Events: Kafka when brokers are configured, otherwise dropped.
	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafka(ctx, cfg.KafkaBrokers, cfg.EventsTopic, log)
		if err != nil {
			log.Error("kafka setup failed", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		publisher = kafka
	}

	// OTP cache: Redis shares state across replicas; the in-memory fallback
	// is only safe for a single instance.
	var cache otpstore.Cache
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache = otpstore.NewRedis(redisClient.Client)
		log.Info("otp cache: redis")
	} else {
		cache = otpstore.NewInMemory()
		log.Warn("otp cache: in-memory, single instance only")
	}

	// Stores: Postgres when configured, in-memory otherwise.
	var (
		applicants applicantstore.Store
		payments   paymentstore.Store
	)
	db, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres setup failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		applicants = applicantstore.NewPostgres(db)
		payments = paymentstore.NewPostgres(db)
		log.Info("stores: postgres")
	} else {
		applicants = applicantstore.NewInMemory()
		payments = paymentstore.NewInMemory()
		log.Warn("stores: in-memory, single instance only")
	}

	sender := email.NewBrevo(cfg.BrevoBaseURL, cfg.BrevoAPIKey, cfg.SenderName, cfg.SenderEmail)

	otpSvc := otpservice.New(cache, sender, log, m, publisher, cfg.OTPTTL)
	guardSvc := applicantservice.New(applicants, log, m, publisher)
	paymentSvc := paymentservice.New(payments, log, m, publisher)
	notifySvc := notify.New(sender, log, cfg.AdminEmail)

	router := httpapi.NewRouter(log,
		otphandler.New(otpSvc, log),
		applicanthandler.New(guardSvc, log),
		paymenthandler.New(paymentSvc, log),
		notify.NewHandler(notifySvc, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting intake-gateway", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
