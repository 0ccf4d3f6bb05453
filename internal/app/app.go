package app

import (
	"fmt"

	"skillswap_backend/internal/config"
	"skillswap_backend/internal/database"
	"skillswap_backend/internal/email"
	"skillswap_backend/internal/handlers"
	"skillswap_backend/internal/logger"
	"skillswap_backend/internal/middleware"
	"skillswap_backend/internal/repositories"
	"skillswap_backend/internal/routes"
	"skillswap_backend/internal/services"
	"skillswap_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Migrations applied")

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	var sender email.Sender
	if cfg.Email.SMTPHost != "" {
		sender = email.NewSMTPSender(cfg)
	} else {
		logger.Warn("SMTP is not configured, email notifications are disabled")
		sender = email.NoopSender{}
	}
	notifier := email.NewNotifier(sender)

	userRepo := repositories.NewUserRepository()
	skillRepo := repositories.NewSkillRepository()
	postRepo := repositories.NewPostRepository()
	propositionRepo := repositories.NewPropositionRepository()
	reviewRepo := repositories.NewReviewRepository()

	return &services.ServiceContainer{
		AuthService:        services.NewAuthService(userRepo),
		UserService:        services.NewUserService(userRepo, reviewRepo),
		SkillService:       services.NewSkillService(skillRepo),
		PostService:        services.NewPostService(postRepo, skillRepo, userRepo, reviewRepo, cfg.Posts.MaxPerUser),
		PropositionService: services.NewPropositionService(propositionRepo, postRepo, userRepo, notifier),
		ReviewService:      services.NewReviewService(reviewRepo, propositionRepo, postRepo, userRepo, notifier),
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:        handlers.NewUserHandler(baseHandler, container.UserService),
		SkillHandler:       handlers.NewSkillHandler(baseHandler, container.SkillService),
		PostHandler:        handlers.NewPostHandler(baseHandler, container.PostService),
		PropositionHandler: handlers.NewPropositionHandler(baseHandler, container.PropositionService),
		ReviewHandler:      handlers.NewReviewHandler(baseHandler, container.ReviewService),
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
