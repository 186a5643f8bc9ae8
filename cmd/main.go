package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quorum/config"
	"github.com/lshigami/Quorum/database"
	_ "github.com/lshigami/Quorum/docs" // Swagger docs
	adminctrl "github.com/lshigami/Quorum/internal/controller/admin"
	userctrl "github.com/lshigami/Quorum/internal/controller/user"
	"github.com/lshigami/Quorum/internal/logger"
	"github.com/lshigami/Quorum/internal/middleware"
	"github.com/lshigami/Quorum/internal/model"
	"github.com/lshigami/Quorum/internal/repository"
	"github.com/lshigami/Quorum/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quorum Survey API
// @version 1.0
// @description Survey authoring for owners and anonymous, validated vote submission for respondents.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			service.NewRedisClient,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewSurveyRepository,
			repository.NewQuestionRepository,
			repository.NewChoiceRepository,
			repository.NewRatingRepository,
		),

		fx.Provide(
			NewAbuseGates,
			service.NewAuthService,
			service.NewSurveyService,
			service.NewQuestionService,
			func(
				surveyRepo repository.SurveyRepository,
				questionRepo repository.QuestionRepository,
				choiceRepo repository.ChoiceRepository,
				gates AbuseGates,
				db *gorm.DB,
			) service.VoteSubmissionService {
				return service.NewVoteSubmissionService(surveyRepo, questionRepo, choiceRepo, gates.Vote, db)
			},
			func(
				surveyRepo repository.SurveyRepository,
				questionRepo repository.QuestionRepository,
				ratingRepo repository.RatingRepository,
				gates AbuseGates,
				db *gorm.DB,
			) service.RatingService {
				return service.NewRatingService(surveyRepo, questionRepo, ratingRepo, gates.Rate, db)
			},
		),

		fx.Provide(
			adminctrl.NewAuthController,
			adminctrl.NewSurveyController,
			adminctrl.NewQuestionController,
			userctrl.NewVoteController,
		),

		fx.Invoke(logger.Configure),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

// AbuseGates holds the gate in front of each anonymous write endpoint.
type AbuseGates struct {
	Vote service.AbuseGate
	Rate service.AbuseGate
}

// NewAbuseGates puts reCAPTCHA in front of vote batches, followed by the Redis
// limiter when REDIS_URL is set. Ratings carry no token and only get the limiter.
func NewAbuseGates(lc fx.Lifecycle, cfg *config.Config, client *redis.Client) AbuseGates {
	recaptcha := service.NewRecaptchaVerifier(cfg)
	if client == nil {
		return AbuseGates{Vote: recaptcha, Rate: service.AllowAll}
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				log.Warn().Err(err).Msg("Redis is not reachable. Rate limited requests will be rejected until it is.")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	voteLimiter := service.NewRedisVoteLimiter(client, service.VoteLimiterScope, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	rateLimiter := service.NewRedisVoteLimiter(client, service.RateLimiterScope, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	return AbuseGates{Vote: service.NewChainGate(recaptcha, voteLimiter), Rate: rateLimiter}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authSvc service.AuthService,
	authCtrl *adminctrl.AuthController,
	surveyCtrl *adminctrl.SurveyController,
	questionCtrl *adminctrl.QuestionController,
	voteCtrl *userctrl.VoteController,
) {
	api := router.Group("/api/v1")
	requireAuth := middleware.RequireAuth(authSvc)

	authCtrl.RegisterRoutes(api)
	surveyCtrl.RegisterRoutes(api, requireAuth)
	questionCtrl.RegisterRoutes(api, requireAuth)
	voteCtrl.RegisterRoutes(api)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quorum API server starting on port %s", cfg.Server.Port)
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
		&model.Survey{},
		&model.Question{},
		&model.Choice{},
		&model.Rating{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
