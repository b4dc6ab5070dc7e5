// Package main provides the main entry point for the Omoikane admin backend
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/Omoikane/app/dto"
	"github.com/amirphl/Omoikane/app/handlers"
	"github.com/amirphl/Omoikane/app/middleware"
	"github.com/amirphl/Omoikane/app/router"
	"github.com/amirphl/Omoikane/app/scheduler"
	"github.com/amirphl/Omoikane/app/services"
	"github.com/amirphl/Omoikane/app/validation"
	businessflow "github.com/amirphl/Omoikane/business_flow"
	"github.com/amirphl/Omoikane/config"
	"github.com/amirphl/Omoikane/database"
	"github.com/amirphl/Omoikane/migrations"
	"github.com/amirphl/Omoikane/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	db        *gorm.DB
	stopFuncs []func()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logOutput, closeLogs, err := config.SetupLogging(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = closeLogs() }()

	log.Printf("Starting Omoikane %s (%s) in %s mode...", cfg.Deployment.Version, cfg.Deployment.CommitHash, cfg.Deployment.Environment)

	// Initialize application
	app, err := initializeApplication(cfg, logOutput)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		serverErr <- app.router.Start(address)
	}()

	// Wait for shutdown signal
	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
	case err := <-serverErr:
		log.Printf("Server stopped unexpectedly: %v", err)
	}

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.router.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if err := database.Close(app.db); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server stopped")
}

// initializeCache connects to Redis when the cache is enabled
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established (db=%d)", cfg.RedisDB)
	return rc, nil
}

// initializeEmailProvider picks the configured email transport
func initializeEmailProvider(cfg config.EmailConfig) services.EmailProvider {
	switch cfg.Provider {
	case "smtp":
		return services.NewSMTPEmailProvider(cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.FromEmail)
	default:
		log.Println("Using mock email provider; emails are logged, not sent")
		return services.NewMockEmailProvider()
	}
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.Config, logOutput io.Writer) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := database.Open(cfg.Database, logOutput, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		runner, err := migrations.NewRunner(db, migrations.All())
		if err != nil {
			return nil, err
		}
		applied, err := runner.Up(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		log.Printf("Applied %d migrations", len(applied))
	}

	// Token revocations live in Redis when available so that every instance sees them
	var revocations services.RevocationStore = services.NewMemoryRevocationStore()
	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		revocations = services.NewRedisRevocationStore(rc, cfg.Cache.RedisPrefix)
		stopFuncs = append(stopFuncs, func() { _ = rc.Close() })
	}

	// Initialize repositories
	adminRepo := repository.NewAdminAuthRepository(db)
	adminDetailsRepo := repository.NewAdminDetailsRepository(db)
	adminPaymentMethodRepo := repository.NewAdminPaymentMethodRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	specializationRepo := repository.NewSpecializationRepository(db)
	paymentMethodRepo := repository.NewPaymentMethodRepository(db)
	languageRepo := repository.NewLanguageRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	clientContactRepo := repository.NewClientContactPersonRepository(db)
	vendorContactRepo := repository.NewVendorContactPersonRepository(db)
	emailPaymentDetailRepo := repository.NewEmailPaymentDetailRepository(db)

	// Initialize services
	notificationService := services.NewNotificationService(initializeEmailProvider(cfg.Email))

	var captchaSvc services.CaptchaService
	if cfg.Security.CaptchaEnabled {
		captchaSvc, err = services.NewCaptchaServiceRotate(cfg.Security.CaptchaTTL, 15, 300)
		if err != nil {
			return nil, err
		}
		stopFuncs = append(stopFuncs, captchaSvc.Close)
	}

	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
		revocations,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize business flows
	adminAuthFlow := businessflow.NewAdminAuthFlow(adminRepo, tokenService, captchaSvc, notificationService, businessflow.AdminAuthOptions{
		CaptchaEnabled: cfg.Security.CaptchaEnabled,
		BcryptCost:     cfg.Security.BcryptCost,
		ResetTokenTTL:  cfg.Security.ResetTokenTTL,
		PublicBaseURL:  cfg.Admin.PublicBaseURL,
	})
	specializationFlow := businessflow.NewSpecializationFlow(specializationRepo)
	profileFlow := businessflow.NewProfileFlow(adminRepo, adminDetailsRepo, db)
	adminPaymentMethodFlow := businessflow.NewAdminPaymentMethodFlow(adminPaymentMethodRepo, paymentMethodRepo, emailPaymentDetailRepo, db)
	exportFlow := businessflow.NewCatalogExportFlow(businessflow.CatalogRepositories{
		Services:        serviceRepo,
		Specializations: specializationRepo,
		PaymentMethods:  paymentMethodRepo,
		Languages:       languageRepo,
		Currencies:      currencyRepo,
		Units:           unitRepo,
		Roles:           roleRepo,
	})

	// Initialize handlers
	v := validation.New()
	h := router.Handlers{
		AdminAuth: handlers.NewAdminAuthHandler(adminAuthFlow, v),
		Profile:   handlers.NewProfileHandler(profileFlow, v),
		Catalog: []router.RouteRegistrar{
			handlers.NewCatalogHandler[dto.ServiceRequest, dto.ServiceDTO](businessflow.NewServiceFlow(serviceRepo), "services", "service", v),
			handlers.NewCatalogHandler[dto.PaymentMethodRequest, dto.PaymentMethodDTO](businessflow.NewPaymentMethodFlow(paymentMethodRepo), "payment-methods", "payment method", v),
			handlers.NewCatalogHandler[dto.LanguageRequest, dto.LanguageDTO](businessflow.NewLanguageFlow(languageRepo), "languages", "language", v),
			handlers.NewCatalogHandler[dto.CurrencyRequest, dto.CurrencyDTO](businessflow.NewCurrencyFlow(currencyRepo), "currencies", "currency", v),
			handlers.NewCatalogHandler[dto.UnitRequest, dto.UnitDTO](businessflow.NewUnitFlow(unitRepo), "units", "unit", v),
			handlers.NewCatalogHandler[dto.RoleRequest, dto.RoleDTO](businessflow.NewRoleFlow(roleRepo), "roles", "role", v),
			handlers.NewCatalogHandler[dto.ClientContactPersonRequest, dto.ContactPersonDTO](businessflow.NewClientContactFlow(clientContactRepo), "client-contacts", "client contact", v),
			handlers.NewCatalogHandler[dto.VendorContactPersonRequest, dto.ContactPersonDTO](businessflow.NewVendorContactFlow(vendorContactRepo), "vendor-contacts", "vendor contact", v),
			handlers.NewCatalogHandler[dto.EmailPaymentDetailRequest, dto.EmailPaymentDetailDTO](businessflow.NewEmailPaymentDetailFlow(emailPaymentDetailRepo), "email-payment-details", "email payment detail", v),
		},
		Specializations:     handlers.NewSpecializationHandler(specializationFlow, v),
		AdminPaymentMethods: handlers.NewAdminPaymentMethodHandler(adminPaymentMethodFlow, v),
		CatalogExport:       handlers.NewCatalogExportHandler(exportFlow, v),
		UI:                  handlers.NewUIHandler(specializationFlow, v),
	}

	health := func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}

	r := router.NewFiberRouter(cfg, h, middleware.NewAuthMiddleware(tokenService), health)

	// Create the first admin on an empty database
	if cfg.Admin.BootstrapUsername != "" {
		token, created, err := adminAuthFlow.BootstrapAdmin(context.Background(), cfg.Admin.BootstrapUsername, cfg.Admin.BootstrapEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
		}
		if created {
			log.Printf("Bootstrap admin %q created; activate it at %s/admin/activate?token=%s",
				cfg.Admin.BootstrapUsername, cfg.Admin.PublicBaseURL, token)
		}
	}

	// Scheduled token cleanup
	if cfg.Scheduler.Enabled {
		cleanup, err := scheduler.NewTokenCleanupScheduler(adminRepo, cfg.Scheduler, cfg.Security.ActivationTokenTTL, nil)
		if err != nil {
			return nil, err
		}
		stopFuncs = append(stopFuncs, cleanup.Start(context.Background()))
	}

	return &Application{
		router:    r,
		db:        db,
		stopFuncs: stopFuncs,
	}, nil
}
