package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gabrielliborges-web/Desafio-Tech-Back/database"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/auth"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/config"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/handlers"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/logger"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/mailer"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/middleware"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/repositories"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/routes"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/scheduler"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/services"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/storage"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/validator"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/internal/workers"
	"github.com/gabrielliborges-web/Desafio-Tech-Back/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, cfg.JWT.SessionExpiresDays)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	mailerInstance := initializeMailer(cfg)

	// The in-process fallback scheduler sends release emails itself.
	schedulerInstance, err := scheduler.NewScheduler(scheduler.Config{
		Enabled:   cfg.Scheduler.Enabled,
		Region:    cfg.Scheduler.Region,
		TargetArn: cfg.Scheduler.TargetArn,
		RoleArn:   cfg.Scheduler.RoleArn,
	}, mailerInstance)
	if err != nil {
		logger.Fatal("Failed to initialize scheduler", "error", err)
	}
	logger.Info("Scheduler initialized", "eventbridge", cfg.Scheduler.Enabled)

	wsManager := ws.NewWebSocketManager()
	go wsManager.Run()
	wsHandler := ws.NewWebSocketHandler(wsManager)

	serviceContainer, resetRepo := initializeServices(gormDB, storageInstance, schedulerInstance, mailerInstance, wsManager)

	workers.NewResetCleanupWorker(resetRepo).Start(context.Background())

	v := validator.New()
	appHandlers := handlers.NewAppHandlers(v, serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	return ginRouter
}

func initializeServices(
	gormDB *gorm.DB,
	storageInstance storage.Storage,
	schedulerInstance scheduler.Scheduler,
	mailerInstance mailer.Mailer,
	broadcaster services.Broadcaster,
) (*services.ServiceContainer, repositories.PasswordResetRepository) {
	userRepo := repositories.NewUserRepository(gormDB)
	movieRepo := repositories.NewMovieRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	resetRepo := repositories.NewPasswordResetRepository(gormDB)

	container := services.NewServiceContainer(services.Dependencies{
		Users:         userRepo,
		Movies:        movieRepo,
		Notifications: notificationRepo,
		Resets:        resetRepo,
		Storage:       storageInstance,
		Scheduler:     schedulerInstance,
		Mailer:        mailerInstance,
		Broadcaster:   broadcaster,
	})
	return container, resetRepo
}

func initializeMailer(cfg *config.Config) mailer.Mailer {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP not configured, outgoing email is logged only")
		return &MockMailer{}
	}

	m, err := mailer.NewSMTPMailer(mailer.Config{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		logger.Fatal("Failed to initialize mailer", "error", err)
	}
	return m
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// Local storage serves its files straight from disk.
	if cfg.Storage.Type == "local" {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	return r
}
