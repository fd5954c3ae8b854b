package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/handlers"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/repository"
	"newsletter-go/internal/service"
)

type Config struct {
	ServiceName    string
	ServiceVersion string
	Port           string
	Logger         *logging.ContextLogger
	TracerProvider trace.TracerProvider
	GinMode        string
	// HTTPLogLevel is the level of per-request access logs; "off" disables them.
	HTTPLogLevel string
	Repository   repository.SubscriberRepository
}

type Application struct {
	server  *http.Server
	config  *Config
	router  *gin.Engine
	repo    repository.SubscriberRepository
	service *service.SubscriptionService
	handler *handlers.SubscriptionHandler
}

// Build wires the HTTP application. Without an injected repository it stores
// subscriptions in memory.
func Build(config *Config) *Application {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	repo := config.Repository
	if repo == nil {
		repo = repository.NewInMemorySubscriberRepository()
	}

	subscriptionService := service.NewSubscriptionService(repo, config.Logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, config.Logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(config.ServiceName, otelgin.WithTracerProvider(config.TracerProvider)))

	if level, enabled := logging.ParseLevel(config.HTTPLogLevel, logrus.InfoLevel); enabled {
		router.Use(accessLog(config.Logger, level))
	}

	router.GET("/", handlers.Ping)
	router.GET("/health_check", handlers.HealthCheck)
	router.POST("/subscriptions", subscriptionHandler.Subscribe)

	server := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Application{
		server:  server,
		config:  config,
		router:  router,
		repo:    repo,
		service: subscriptionService,
		handler: subscriptionHandler,
	}
}

func accessLog(logger *logging.ContextLogger, level logrus.Level) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.WithTracing(c.Request.Context()).WithFields(logrus.Fields{
			"method":     method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}).Log(level, "HTTP request completed")
	}
}

func (app *Application) Run() error {
	app.config.Logger.Info("Starting HTTP server on :" + app.config.Port)
	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *Application) Shutdown(ctx context.Context) error {
	app.config.Logger.Info("Shutdown signal received, draining HTTP server")
	return app.server.Shutdown(ctx)
}

func (app *Application) GetRepo() repository.SubscriberRepository {
	return app.repo
}

func (app *Application) GetRouter() *gin.Engine {
	return app.router
}
