package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockdesk/internal/config"
	"github.com/mamadbah2/stockdesk/internal/domain/models"
	"github.com/mamadbah2/stockdesk/internal/repository/mongodb"
	"github.com/mamadbah2/stockdesk/internal/repository/sheets"
	"github.com/mamadbah2/stockdesk/internal/scheduler"
	"github.com/mamadbah2/stockdesk/internal/server/handlers"
	"github.com/mamadbah2/stockdesk/internal/server/router"
	"github.com/mamadbah2/stockdesk/internal/session"
	commandsvc "github.com/mamadbah2/stockdesk/internal/service/commands"
	dashboardsvc "github.com/mamadbah2/stockdesk/internal/service/dashboard"
	reportingsvc "github.com/mamadbah2/stockdesk/internal/service/reporting"
	"github.com/mamadbah2/stockdesk/internal/service/resources"
	whatsappsvc "github.com/mamadbah2/stockdesk/internal/service/whatsapp"
	"github.com/mamadbah2/stockdesk/pkg/clients/backend"
	whatsappclient "github.com/mamadbah2/stockdesk/pkg/clients/whatsapp"
	"github.com/mamadbah2/stockdesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := session.NewManager(session.NewFileStore(cfg.Session.FilePath))
	if err != nil {
		baseLogger.Fatal("failed to load session", zap.Error(err))
	}
	if cfg.Session.Token != "" && cfg.Session.Token != sess.Token() {
		if err := sess.Set(session.Credentials{Token: cfg.Session.Token, CSRFToken: cfg.API.CSRFToken}); err != nil {
			baseLogger.Fatal("failed to store API_TOKEN", zap.Error(err))
		}
	}

	sessionLogger := baseLogger.Named("session")
	apiClient := backend.NewClient(cfg.API, sess, baseLogger.Named("client.backend"))
	apiClient.OnUnauthorized(func() {
		if err := sess.Invalidate(); err != nil {
			sessionLogger.Error("failed to clear rejected session", zap.Error(err))
		}
	})
	sess.OnInvalidate(func() {
		sessionLogger.Warn("session invalidated, sign in again to restore API access")
	})

	products := resources.NewProductService(apiClient)
	bills := resources.NewBillService(apiClient)
	suppliers := resources.NewSupplierService(apiClient)
	purchases := resources.NewPurchaseService(apiClient)
	rentals := resources.NewRentalService(apiClient)
	users := resources.NewUserService(apiClient)
	auth := resources.NewAuthService(apiClient, sess)

	startSession(ctx, cfg.Session, sess, auth, sessionLogger)

	rentalInwards, err := resources.NewInwardService(apiClient, models.InwardRental)
	if err != nil {
		baseLogger.Fatal("failed to init rental inwards", zap.Error(err))
	}
	accessoryInwards, err := resources.NewInwardService(apiClient, models.InwardAccessory)
	if err != nil {
		baseLogger.Fatal("failed to init accessory inwards", zap.Error(err))
	}

	reportingDeps := reportingsvc.Dependencies{
		Products: products,
		Sales:    bills,
		Rentals:  rentals,
		Location: cfg.Reporting.Location(),
	}

	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		reportingDeps.Snapshots = mongoRepo
	} else {
		baseLogger.Warn("MONGODB_URI missing, stock snapshots disabled")
	}

	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportingDeps.Sheet = sheetsRepo
	}

	reportingSvc := reportingsvc.NewService(reportingDeps, baseLogger.Named("svc.reporting"))
	dashboardSvc := dashboardsvc.NewService(dashboardsvc.Sources{
		Products:  products,
		Users:     users,
		Bills:     bills,
		Suppliers: suppliers,
		Purchases: purchases,
		Rentals:   rentals,
	}, baseLogger.Named("svc.dashboard"))

	apiHandler := handlers.NewAPIHandler(handlers.APIDeps{
		Dashboard: dashboardSvc,
		Reports:   reportingSvc,
		Session:   sess,
	}, baseLogger.Named("handlers.api"))
	resourceHandler := handlers.NewResourceHandler(handlers.ResourceDeps{
		Products:   products,
		Categories: resources.NewCategoryService(apiClient),
		Suppliers:  suppliers,
		Users:      users,
		Sales:      bills,
		Rentals:    rentals,
		Purchases:  purchases,
		Items:      resources.NewProductItemService(apiClient),
		Inwards: map[models.InwardKind]handlers.InwardStore{
			models.InwardRental:    rentalInwards,
			models.InwardAccessory: accessoryInwards,
		},
	}, baseLogger.Named("handlers.resources"))

	var (
		webhookHandler *handlers.WebhookHandler
		notifier       scheduler.Notifier
	)
	if cfg.WhatsApp.Enabled() {
		commandDispatcher := commandsvc.NewService(reportingSvc, baseLogger.Named("svc.commands"))
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, baseLogger.Named("svc.whatsapp"))
		webhookHandler = handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
		notifier = messagingSvc
	} else {
		baseLogger.Warn("whatsapp credentials missing, webhook and digests disabled")
	}

	engine := router.New(apiHandler, resourceHandler, webhookHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, notifier, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * cfg.API.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("api", cfg.API.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// startSession restores the stored session, signing in with the configured
// credentials when there is none. The server still starts without a session;
// API calls then fail with 401 until one is provided.
func startSession(ctx context.Context, cfg config.SessionConfig, sess *session.Manager, auth *resources.AuthService, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	user, err := session.Bootstrap(ctx, sess, auth.Me, time.Now())
	if err == nil {
		log.Info("session restored", zap.String("user", user.Username), zap.String("role", string(user.Role)))
		return
	}
	if sess.Token() != "" {
		// API unreachable; the stored token is kept for the next call.
		log.Warn("could not validate stored session", zap.Error(err))
		return
	}
	log.Warn("no usable session", zap.Error(err))

	if cfg.Username == "" {
		return
	}
	user, err = auth.Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		log.Error("sign in failed", zap.Error(err))
		return
	}
	if user != nil {
		log.Info("signed in", zap.String("user", user.Username), zap.String("role", string(user.Role)))
	}
}
