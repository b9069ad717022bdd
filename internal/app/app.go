package app

import (
	"context"
	"fmt"

	"fichaje_backend/database"
	"fichaje_backend/internal/config"
	"fichaje_backend/internal/email"
	"fichaje_backend/internal/handlers"
	"fichaje_backend/internal/logger"
	"fichaje_backend/internal/middleware"
	"fichaje_backend/internal/repositories"
	"fichaje_backend/internal/routes"
	"fichaje_backend/internal/services"
	"fichaje_backend/internal/validator"
	"fichaje_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

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
		logger.Fatal("Database migration failed", "error", err)
	}

	workers.NewRecoveryWorker(gormDB).Start(context.Background())

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	userRepo := repositories.NewUserRepository()

	serviceContainer := initializeServices(cfg, userRepo)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, userRepo)

	return ginRouter
}

func initializeServices(cfg *config.Config, userRepo repositories.UserRepository) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, recovery emails are logged instead of sent")
		emailService = &LoggingEmailProvider{}
	} else {
		emailService = email.NewSMTPProvider(cfg)
	}

	fichajeRepo := repositories.NewFichajeRepository()
	recoveryCodeRepo := repositories.NewRecoveryCodeRepository()

	userService := services.NewUserService(userRepo)
	fichajeService := services.NewFichajeService(fichajeRepo, userRepo)
	recoveryService := services.NewRecoveryService(userRepo, recoveryCodeRepo, emailService)

	return &services.ServiceContainer{
		UserService:     userService,
		FichajeService:  fichajeService,
		RecoveryService: recoveryService,
		EmailService:    emailService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		UserHandler:     handlers.NewUserHandler(baseHandler, services.UserService),
		FichajeHandler:  handlers.NewFichajeHandler(baseHandler, services.FichajeService),
		RecoveryHandler: handlers.NewRecoveryHandler(baseHandler, services.RecoveryService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}
