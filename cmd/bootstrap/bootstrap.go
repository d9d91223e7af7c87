package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-scheduling/config"
	deliveryHttp "go-clinic-scheduling/internal/delivery/http"
	"go-clinic-scheduling/internal/delivery/http/handler"
	"go-clinic-scheduling/internal/delivery/http/middleware"
	"go-clinic-scheduling/internal/infrastructure/cache"
	"go-clinic-scheduling/internal/infrastructure/database"
	"go-clinic-scheduling/internal/repository"
	"go-clinic-scheduling/internal/service"
	"go-clinic-scheduling/internal/usecase"
	"go-clinic-scheduling/pkg/jwt"
	"go-clinic-scheduling/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Apply schema migrations
	if err := database.RunMigrations(db, "file://db/migrations"); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	availabilityRepo := repository.NewDoctorAvailabilityRepository()
	holidayRepo := repository.NewHolidayRepository()
	ruleRepo := repository.NewAppointmentRuleRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	departmentRepo := repository.NewDepartmentRepository(db)
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	lockService := service.NewSlotLockService(redisClient, log, cfg.Booking.LockTTL)

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorProfileRepo)
	bookingUsecase := usecase.NewBookingUsecase(db, log, cfg.Booking, appointmentRepo, availabilityRepo, holidayRepo, ruleRepo, doctorProfileRepo, patientProfileRepo, lockService, auditService)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, availabilityRepo, doctorProfileRepo, auditService)
	holidayUsecase := usecase.NewHolidayUsecase(db, log, holidayRepo, doctorProfileRepo, auditService)
	ruleUsecase := usecase.NewRuleUsecase(db, log, ruleRepo, departmentRepo, auditService)
	departmentUsecase := usecase.NewDepartmentUsecase(departmentRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	appointmentHandler := handler.NewAppointmentHandler(bookingUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityUsecase, customValidator)
	holidayHandler := handler.NewHolidayHandler(holidayUsecase, customValidator)
	ruleHandler := handler.NewRuleHandler(ruleUsecase, customValidator)
	departmentHandler := handler.NewDepartmentHandler(departmentUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, db, userRepo)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(doctorHandler, appointmentHandler, availabilityHandler, holidayHandler, ruleHandler, departmentHandler, auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
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

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
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
}
