// Package main is the entry point for the Bonik shop server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bonik/internal/cache"
	"bonik/internal/checkout"
	"bonik/internal/config"
	"bonik/internal/courier"
	"bonik/internal/database"
	"bonik/internal/events"
	"bonik/internal/handlers"
	"bonik/internal/invoice"
	"bonik/internal/router"
	"bonik/internal/session"
	"bonik/internal/sms"
	"bonik/internal/storage"
	"bonik/internal/store"
	"bonik/internal/tracking"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session store backed by Valkey.
	sessionStore := session.NewStore(valkeyClient)

	// Data stores.
	userStore := store.NewUserStore(db)
	productStore := store.NewProductStore(db)
	categoryStore := store.NewCategoryStore(db)
	bannerStore := store.NewBannerStore(db)
	couponStore := store.NewCouponStore(db)
	orderStore := store.NewOrderStore(db)
	pageStore := store.NewLandingPageStore(db)
	settingStore := store.NewSettingStore(db)
	smsTemplateStore := store.NewSMSTemplateStore(db)

	// Landing-page cache (full-page HTML in Valkey).
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Checkout pricing policy.
	pricing := checkout.Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatShippingFee:       cfg.FlatShippingFee,
		ZoneFeeInsideDhaka:    cfg.ZoneFeeInsideDhaka,
		ZoneFeeOutsideDhaka:   cfg.ZoneFeeOutsideDhaka,
	}
	checkoutService := checkout.NewService(productStore, couponStore, orderStore, pricing)

	// Courier registry — providers without credentials are not registered.
	courierRegistry := courier.NewRegistry(cfg.ActiveCourier, map[string]courier.ProviderConfig{
		"steadfast": {APIKey: cfg.SteadfastAPIKey, APISecret: cfg.SteadfastSecret, BaseURL: cfg.SteadfastBaseURL},
		"pathao":    {ClientID: cfg.PathaoClientID, APISecret: cfg.PathaoClientSecret, Username: cfg.PathaoUsername, Password: cfg.PathaoPassword, BaseURL: cfg.PathaoBaseURL},
		"redx":      {APIKey: cfg.RedXToken, BaseURL: cfg.RedXBaseURL},
		"paperfly":  {Username: cfg.PaperflyUser, Password: cfg.PaperflyPassword, BaseURL: cfg.PaperflyBaseURL},
	})

	slog.Info("courier providers initialized",
		"active", courierRegistry.ActiveName(),
		"available", courierRegistry.Available(),
	)

	// Delivery-history lookups for fraud screening.
	historyClient := courier.NewHistoryClient(cfg.BDCourierAPIKey, cfg.BDCourierBaseURL)

	// Facebook Conversions API — credentials live in admin settings, so
	// the client is always constructed; it no-ops when unconfigured.
	capiClient := tracking.NewClient(settingStore)

	// SMS notifications (optional — disabled without an API key).
	var smsNotifier *sms.Notifier
	if cfg.SMSAPIKey != "" {
		gateway := sms.NewGateway(cfg.SMSAPIKey, cfg.SMSSenderID, cfg.SMSBaseURL)
		smsNotifier = sms.NewNotifier(gateway, smsTemplateStore)
	} else {
		slog.Warn("sms gateway not configured — status notifications disabled")
	}

	// Kafka order events (optional).
	var producer *events.Producer
	if cfg.KafkaBrokers != "" {
		producer, err = events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			slog.Error("failed to connect to kafka", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		slog.Info("kafka producer connected", "brokers", cfg.KafkaBrokers)
	} else {
		slog.Warn("kafka not configured — order events disabled")
	}

	// S3-compatible object storage (optional — media uploads disabled without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	// Invoice PDFs (optional — needs headless Chromium).
	var invoiceGenerator *invoice.Generator
	if cfg.ChromePath != "" {
		invoiceGenerator = invoice.NewGenerator(cfg.SiteName, cfg.ChromePath)
	} else {
		slog.Warn("chromium not configured — invoice PDFs disabled")
	}

	// Handler groups.
	h := router.Handlers{
		Public:       handlers.NewPublic(productStore, categoryStore, bannerStore, couponStore, pageStore, pageCache),
		Checkout:     handlers.NewCheckout(checkoutService, capiClient, producer),
		Auth:         handlers.NewAuth(sessionStore, userStore),
		Admin:        handlers.NewAdmin(orderStore, settingStore, userStore, smsTemplateStore, courierRegistry, historyClient),
		AdminCatalog: handlers.NewAdminCatalog(productStore, categoryStore, bannerStore, couponStore, pageCache),
		AdminOrders:  handlers.NewAdminOrders(orderStore, courierRegistry, smsNotifier, producer, invoiceGenerator, pricing),
		AdminPages:   handlers.NewAdminLandingPages(pageStore, pageCache),
		AdminMedia:   handlers.NewAdminMedia(storageClient),
	}

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	r := router.New(sessionStore, h, router.Config{
		SecureCookies: !cfg.IsDev(),
	})

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate invoice PDF rendering and bulk courier bookings.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
