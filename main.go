package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"restaurant/internal/audit"
	"restaurant/internal/config"
	"restaurant/internal/database"
	"restaurant/internal/handlers"
	"restaurant/internal/identity"
	"restaurant/internal/logging"
	"restaurant/internal/middleware"
	"restaurant/internal/orderlog"
	"restaurant/internal/services"
	"restaurant/internal/session"
	"restaurant/internal/store"
	"restaurant/internal/translate"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)

	sqlDB, err := database.OpenMySQL(cfg.MySQL)
	if err != nil {
		log.WithError(err).Fatal("mysql connect failed")
	}
	if err := database.Migrate(sqlDB); err != nil {
		log.WithError(err).Fatal("mysql migrate failed")
	}
	st := store.New(sqlDB)

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("mongo connect failed")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(cfg.MongoDB)
	log.WithField("database", db.Name()).Info("mongo connected")

	if err := database.EnsureOrderLogIndexes(db, log); err != nil {
		log.WithError(err).Warn("order log index warning")
	}

	var sessionStore session.Store
	switch cfg.SessionStore {
	case "memory":
		sessionStore = session.NewMemoryStore()
	default:
		if err := database.EnsureSessionIndexes(db, log); err != nil {
			log.WithError(err).Warn("session index warning")
		}
		sessionStore = session.NewMongoStore(db)
	}
	sessions, err := session.NewManager(sessionStore, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.WithError(err).Fatal("session manager init failed")
	}

	if cfg.AuditWebhookURL == "" {
		log.Info("audit webhook not configured, notifications disabled")
	}
	if cfg.TranslateAPIKey == "" {
		log.Warn("TRANSLATE_API_KEY not set, /api/translate will answer 502")
	}

	logs := orderlog.NewMongoStore(db)
	notifier := audit.New(cfg.AuditWebhookURL, cfg.AuditTimeout)

	router := handlers.NewRouter(handlers.Deps{
		Menu:           services.NewMenuService(st, cfg.AdminEmails, log),
		Orders:         services.NewOrderService(st, logs, notifier, cfg.AdminEmails, cfg.AuditTimeout, log),
		Admin:          services.NewAdminService(st, logs, cfg.AdminEmails, log),
		Auth:           services.NewAuthService(identity.NewFirebaseVerifier(cfg.FirebaseProjectID), st, log),
		Sessions:       sessions,
		Translator:     translate.NewClient(cfg.TranslateEndpoint, cfg.TranslateAPIKey, cfg.TranslateTimeout),
		Store:          st,
		Mongo:          db,
		Admins:         cfg.AdminEmails,
		CookieSecure:   cfg.CookieSecure,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		Limiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logging.Component(log, "ratelimit")),
		Log:            log,
	})

	serve(router, cfg.Port, log)
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests.
func serve(handler http.Handler, port string, log logrus.FieldLogger) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
