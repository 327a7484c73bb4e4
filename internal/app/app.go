package app

import (
	"net/http"
	"time"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/config"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/handler"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/middleware"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/predictor"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/service"
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options holds the dependencies of the HTTP application
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	// Redis is optional; without it predictions are not published and the feed route is absent.
	Redis  *redis.Client
	Logger *zap.Logger
	// Predictor defaults to an HTTP client built from Config.Predictor.
	Predictor service.Predictor
	// Clock defaults to time.Now.
	Clock service.Clock
	Build handler.BuildInfo
}

// NewRouter wires repositories, services and handlers into a gin engine
func NewRouter(opts Options) *gin.Engine {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	pred := opts.Predictor
	if pred == nil {
		pred = predictor.NewClient(cfg.Predictor)
	}
	var publisher service.PredictionPublisher = service.NopPredictionPublisher{}
	if opts.Redis != nil {
		publisher = service.NewRedisPredictionPublisher(opts.Redis)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(opts.DB)
	symptomRepo := repository.NewSymptomRepository(opts.DB)
	predictionRepo := repository.NewPredictionRepository(opts.DB)
	noteRepo := repository.NewMentalHealthNoteRepository(opts.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT, now)
	userService := service.NewUserService(userRepo, cfg.Retention, logger)
	symptomService := service.NewSymptomService(symptomRepo, now)
	noteService := service.NewNoteService(noteRepo, now)
	predictionService := service.NewPredictionService(userRepo, symptomRepo, predictionRepo, pred, publisher, logger, now)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.RequestLoggerMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(corsMiddleware())

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})
	router.NoMethod(func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	public := &router.RouterGroup
	handler.NewSystemHandler(opts.DB, opts.Redis, opts.Build, now).RegisterRoutes(public)
	handler.NewAuthHandler(authService).RegisterRoutes(public)

	authed := router.Group("",
		middleware.AuthMiddleware(authService),
		middleware.RequireUser(userService),
	)
	handler.NewUserHandler(userService).RegisterRoutes(authed)
	handler.NewSymptomHandler(symptomService).RegisterRoutes(authed)
	handler.NewPredictionHandler(predictionService).RegisterRoutes(authed)
	handler.NewMentalHealthHandler(noteService).RegisterRoutes(authed)
	if opts.Redis != nil {
		handler.NewFeedHandler(opts.Redis, logger).RegisterRoutes(authed)
	}

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
