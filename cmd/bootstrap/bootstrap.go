package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"borewell-booking/config"
	deliveryHttp "borewell-booking/internal/delivery/http"
	"borewell-booking/internal/delivery/http/handler"
	"borewell-booking/internal/delivery/http/middleware"
	"borewell-booking/internal/infrastructure/broker"
	"borewell-booking/internal/infrastructure/cache"
	"borewell-booking/internal/infrastructure/database"
	"borewell-booking/internal/infrastructure/mailer"
	"borewell-booking/internal/notifier"
	"borewell-booking/internal/repository"
	"borewell-booking/internal/service"
	"borewell-booking/internal/usecase"
	"borewell-booking/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config        *config.Config
	DB            *gorm.DB
	RedisClient   *redis.Client
	Publisher     *broker.Publisher
	Notifications service.NotificationService
	Server        *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewConnection(cfg.DB, cfg.App.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	if err := database.Migrate(db); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("Database connected successfully")

	// Initialize Redis (optional, bookings are served from the database without it)
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logrus.Warnf("Booking cache disabled: %v", err)
		} else {
			app.RedisClient = redisClient
		}
	}

	// Initialize message broker (optional)
	if cfg.MQ.Enabled() {
		publisher, err := broker.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			logrus.Warnf("Booking events disabled: %v", err)
		} else {
			app.Publisher = publisher
			logrus.Infof("Publishing booking events to exchange %s", cfg.MQ.Exchange)
		}
	}

	// Initialize all layers
	app.Notifications = initializeNotifications(cfg, app.Publisher)
	app.Server = initializeServer(cfg, db, app.RedisClient, app.Notifications)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initializeNotifications picks the delivery channels for new bookings
func initializeNotifications(cfg *config.Config, publisher *broker.Publisher) service.NotificationService {
	log := logrus.StandardLogger()

	loc, err := time.LoadLocation(cfg.Notify.Timezone)
	if err != nil {
		logrus.Warnf("Unknown NOTIFY_TIMEZONE %q, using UTC", cfg.Notify.Timezone)
		loc = time.UTC
	}

	var notifiers []notifier.Notifier
	if cfg.Mail.Enabled() {
		sender := mailer.NewSMTPSender(cfg.Mail, cfg.Notify.Timeout)
		notifiers = append(notifiers, notifier.NewEmailNotifier(sender, cfg.Mail.User, cfg.Mail.OwnerEmail, loc))
	} else {
		logrus.Warn("EMAIL_USER/EMAIL_PASS not set, new bookings will only be logged")
		notifiers = append(notifiers, notifier.NewLogNotifier(log))
	}
	if publisher != nil {
		notifiers = append(notifiers, notifier.NewEventNotifier(publisher))
	}

	return service.NewNotificationService(log, cfg.Notify.Timeout, notifiers...)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, notifications service.NotificationService) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	bookingRepo := repository.NewBookingRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	bookingCache := service.NewBookingCache(redisClient, cfg.Redis.TTL, log)

	// Initialize usecases
	bookingUsecase := usecase.NewBookingUsecase(db, log, customValidator, bookingRepo, auditService, bookingCache, notifications)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo, bookingRepo)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler()
	bookingHandler := handler.NewBookingHandler(bookingUsecase, cfg.App.IsDevelopment())
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	recoveryMiddleware := middleware.NewRecoveryMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(healthHandler, bookingHandler, auditLogHandler, corsMiddleware, loggingMiddleware, recoveryMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		logrus.Infof("Booking notifications go to: %s", valueOr(app.Config.Mail.OwnerEmail, "(log only)"))
		logrus.Infof("Database: %s %s", app.Config.DB.Driver, app.Config.DB.Address())
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Let in-flight notifications finish; each one is bounded by NOTIFY_TIMEOUT
	if app.Notifications != nil {
		app.Notifications.Wait()
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, broker)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	// Close broker connection
	if app.Publisher != nil {
		app.Publisher.Close()
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
