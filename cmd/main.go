package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/ardalabs/olympiad-engine/config"
	"github.com/ardalabs/olympiad-engine/database"
	_ "github.com/ardalabs/olympiad-engine/docs" // Swagger docs
	adminctrl "github.com/ardalabs/olympiad-engine/internal/controller/admin"
	userctrl "github.com/ardalabs/olympiad-engine/internal/controller/user"
	"github.com/ardalabs/olympiad-engine/internal/ledger"
	"github.com/ardalabs/olympiad-engine/internal/logger"
	"github.com/ardalabs/olympiad-engine/internal/middleware"
	"github.com/ardalabs/olympiad-engine/internal/model"
	"github.com/ardalabs/olympiad-engine/internal/notify"
	"github.com/ardalabs/olympiad-engine/internal/repository"
	"github.com/ardalabs/olympiad-engine/internal/service"
)

// @title Olympiad Engine API
// @version 1.0
// @description Timed competitive olympiad platform: registration, timed attempts, scoring, leaderboards, and reward distribution.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewRedisClient,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewOlympiadRepository,
			repository.NewQuestionRepository,
			repository.NewRegistrationRepository,
			repository.NewAttemptRepository,
			repository.NewAwardRepository,
			repository.NewPaymentRepository,
			repository.NewAccountRepository,
			ledger.NewLedger,
			notify.NewNotifier,
		),

		fx.Provide(
			service.NewScoringService,
			service.NewRegistrationService,
			service.NewAttemptService,
			service.NewLeaderboardService,
			service.NewRewardService,
			service.NewAwardService,
			service.NewOlympiadService,
		),

		fx.Provide(
			userctrl.NewOlympiadController,
			userctrl.NewAttemptController,
			userctrl.NewAwardController,
			adminctrl.NewAdminOlympiadController,
			adminctrl.NewAdminAwardController,
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

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	olympiadCtrl *userctrl.OlympiadController,
	attemptCtrl *userctrl.AttemptController,
	awardCtrl *userctrl.AwardController,
	adminOlympiadCtrl *adminctrl.AdminOlympiadController,
	adminAwardCtrl *adminctrl.AdminAwardController,
) {
	secret := cfg.Auth.JWTSecret

	api := router.Group("/api/v1")
	{
		olympiads := api.Group("/olympiads")
		olympiads.GET("", olympiadCtrl.List)
		olympiads.GET("/:olympiad_id", middleware.OptionalAuth(secret), olympiadCtrl.Details)
		olympiads.GET("/:olympiad_id/leaderboard", middleware.OptionalAuth(secret), olympiadCtrl.Leaderboard)

		authed := olympiads.Group("", middleware.RequireAuth(secret))
		authed.POST("/:olympiad_id/register", olympiadCtrl.Register)
		authed.POST("/:olympiad_id/attempts/start", attemptCtrl.Start)
		authed.POST("/:olympiad_id/attempts/answer", attemptCtrl.SubmitAnswer)
		authed.POST("/:olympiad_id/attempts/finish", attemptCtrl.Finish)
		authed.GET("/:olympiad_id/my-result", olympiadCtrl.MyResult)

		api.POST("/awards/:award_id/address", middleware.RequireAuth(secret), awardCtrl.RecordAddress)
	}

	admin := router.Group("/api/v1/admin", middleware.RequireAuth(secret), middleware.RequireStaff())
	{
		admin.POST("/olympiads", adminOlympiadCtrl.Create)
		admin.POST("/olympiads/:olympiad_id/publish", adminOlympiadCtrl.Publish)
		admin.PUT("/olympiads/:olympiad_id/questions", adminOlympiadCtrl.ReplaceQuestions)
		admin.POST("/olympiads/:olympiad_id/distribute", adminOlympiadCtrl.DistributeRewards)
		admin.GET("/olympiads/:olympiad_id/awards", adminAwardCtrl.ListByOlympiad)
		admin.PUT("/awards/:award_id/status", adminAwardCtrl.UpdateStatus)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Olympiad engine starting on port %s", cfg.Server.Port)
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
		&model.Olympiad{},
		&model.Question{},
		&model.PrizeDefinition{},
		&model.Registration{},
		&model.Attempt{},
		&model.AwardRecord{},
		&model.UserAccount{},
		&model.LedgerTransaction{},
		&model.Payment{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
