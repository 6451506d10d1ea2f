package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"textbook_backend/config"
	"textbook_backend/database"
	_ "textbook_backend/docs" // Swagger docs - auto-generated
	adminctrl "textbook_backend/internal/controller/admin"
	newsctrl "textbook_backend/internal/controller/news"
	userctrl "textbook_backend/internal/controller/user"
	"textbook_backend/internal/logger"
	"textbook_backend/internal/middleware"
	"textbook_backend/internal/model"
	"textbook_backend/internal/random"
	"textbook_backend/internal/repository"
	"textbook_backend/internal/service"
	"textbook_backend/internal/storage"
)

// @title Textbook Quiz API
// @version 1.0
// @description Quiz/exam backend: authentication, news, test delivery with seeded shuffling, and scored submissions.
// @host localhost:4000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			storage.NewLocalStorage,
			random.NewSineSource,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewAdminRepository,
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewResultRepository,
			repository.NewNewsRepository,
		),

		// Services layer
		fx.Provide(
			service.NewTokenService,
			service.NewAuthService,
			service.NewAdminService,
			service.NewTestDeliveryService,
			service.NewTestSubmissionService,
			service.NewNewsService,
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewUserController,
			userctrl.NewTestController,
			adminctrl.NewAdminController,
			newsctrl.NewNewsController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Request logging through zerolog
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("http_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the API routes and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens service.TokenService,
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	userCtrl *userctrl.UserController,
	testCtrl *userctrl.TestController,
	adminCtrl *adminctrl.AdminController,
	newsCtrl *newsctrl.NewsController,
) {
	requireAuth := middleware.RequireAuth(tokens, userRepo)
	requireAdmin := middleware.RequireAdmin(tokens, adminRepo)

	// Stored images
	router.Static("/uploads", cfg.Upload.Dir)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		users.POST("/register", userCtrl.Register)
		users.POST("/login", userCtrl.Login)
		users.GET("/me", requireAuth, userCtrl.Me)
		users.GET("/stats", requireAdmin, userCtrl.Stats)

		news := api.Group("/news")
		news.GET("/get", newsCtrl.List)
		news.POST("/add", requireAdmin, newsCtrl.Add)
		news.POST("/delete", requireAdmin, newsCtrl.Remove)

		tests := api.Group("/tests")
		tests.GET("/health", testCtrl.Health)
		tests.POST("/submit", requireAuth, testCtrl.SubmitTest)
		tests.GET("/:subject", testCtrl.GetTestBySubject)

		admin := api.Group("/admin")
		admin.POST("/login", adminCtrl.Login)
		admin.POST("/create", requireAdmin, adminCtrl.Create)
		admin.GET("/all", requireAdmin, adminCtrl.List)
		admin.GET("/users", requireAdmin, adminCtrl.ListUsers)
		admin.GET("/users/stats", requireAdmin, adminCtrl.UserStats)
		admin.GET("/users/:userId/tests", requireAdmin, adminCtrl.UserTestHistory)
		admin.DELETE("/users/:userId", requireAdmin, adminCtrl.DeactivateUser)
		admin.DELETE("/:id", requireAdmin, adminCtrl.Delete)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Textbook quiz API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Test{},
		&model.Question{},
		&model.Result{},
		&model.ResultAnswer{},
		&model.News{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
