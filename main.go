package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JerryLinyx/MarketDigest/config"
	"github.com/JerryLinyx/MarketDigest/controllers"
	"github.com/JerryLinyx/MarketDigest/mailer"
	"github.com/JerryLinyx/MarketDigest/news"
	"github.com/JerryLinyx/MarketDigest/notifier"
	"github.com/JerryLinyx/MarketDigest/repository"
	"github.com/JerryLinyx/MarketDigest/router"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}
	defer config.CloseDB(db)

	if err := config.MigrateDB(db); err != nil {
		slog.Error("database migration failed", "error", err)
	}

	var newsStore repository.NewsStore = repository.NewNewsStore(db)
	if rdb := config.OpenRedis(cfg); rdb != nil {
		defer rdb.Close()
		newsStore = repository.NewCachedNewsStore(newsStore, rdb, cfg.Cache.TTL)
	}
	userStore := repository.NewUserStore(db)

	provider := news.NewClient(news.ClientConfig{
		Host:      cfg.Provider.Host,
		APIKey:    cfg.Provider.Key,
		TrendType: cfg.Provider.TrendType,
		Country:   cfg.Provider.Country,
		Language:  cfg.Provider.Language,
		Timeout:   cfg.Provider.Timeout,
	})
	ingestor := news.NewIngestor(provider, newsStore)

	renderer := mailer.NewRenderer(cfg.Digest.CTAURL)
	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		Timeout:  cfg.Mail.Timeout,
	}, renderer)

	composer := notifier.NewComposer(newsStore, cfg.Digest.MaxArticles)
	bulk := notifier.New(userStore, sender, notifier.Options{
		Enabled:     cfg.Notifier.Enabled,
		Concurrency: cfg.Notifier.Concurrency,
		SendTimeout: cfg.Notifier.SendTimeout,
	})

	var scheduler *notifier.Scheduler
	if bulk.Enabled() {
		scheduler, err = notifier.NewScheduler(composer, bulk, notifier.ScheduleOptions{
			Spec:       cfg.Notifier.Schedule,
			Timezone:   cfg.Notifier.Timezone,
			Subject:    cfg.Digest.Subject,
			RunTimeout: cfg.Notifier.RunTimeout,
		})
		if err != nil {
			log.Fatalf("Failed to set up digest scheduler: %v", err)
		}
		scheduler.Start()
	} else {
		slog.Info("bulk email disabled, digest scheduler not started")
	}

	var pinger controllers.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}

	r := router.InitRouter(router.Handlers{
		Health: controllers.NewHealthController(pinger),
		News:   controllers.NewNewsController(ingestor, newsStore),
		Email:  controllers.NewEmailController(composer, sender, cfg.Digest.Subject),
		Digest: controllers.NewDigestController(composer, bulk, cfg.Digest.Subject),
		Auth:   controllers.NewAuthController(userStore, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	}, router.Options{
		AllowedOrigins: cfg.App.AllowedOrigins,
		JWTSecret:      cfg.Auth.JWTSecret,
	})

	srv := &http.Server{
		Addr:    cfg.App.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server running", "addr", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if scheduler != nil {
		scheduler.Stop(ctx)
	}
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	slog.Info("server exiting")
}
