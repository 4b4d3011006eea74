package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"wellness-go/internal/cache"
	"wellness-go/internal/config"
	"wellness-go/internal/database"
	logger "wellness-go/internal/logging"
	"wellness-go/internal/models"
	"wellness-go/internal/repository"
	"wellness-go/internal/router"
	"wellness-go/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration first; the logger is configured from it.
	v, err := config.Init(".")
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}
	conf := config.Conf

	log, err := logger.Init(".", conf.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	config.Watch(v, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	if err := database.Init(log, conf.Database); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Load assessment templates at startup
	catalog, err := repository.LoadTemplateCatalog(conf.Assessments.TemplatesDir, log)
	if err != nil {
		log.Fatal("Failed to load assessment templates", zap.Error(err))
	}

	var rdb *redis.Client
	if conf.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, insights will not be cached", zap.String("addr", conf.Redis.Addr), zap.Error(err))
			rdb.Close()
			rdb = nil
		} else {
			defer rdb.Close()
			log.Info("Connected to Redis", zap.String("addr", conf.Redis.Addr))
		}
	}
	insightsCache := cache.NewInsightsCache(rdb, conf.Redis.TTL)

	store := repository.Store{}
	deps := router.Dependencies{
		Templates:     catalog,
		Assessments:   services.NewAssessmentService(log, catalog, store, insightsCache),
		Insights:      services.NewInsightsService(log, store, store, insightsCache, conf.Analytics),
		Activity:      services.NewActivityService(log, store, insightsCache),
		InsightsCache: insightsCache,
		LookupUser: func(c *gin.Context, id uint) (*models.User, error) {
			return repository.GetUserByID(c.Request.Context(), id)
		},
	}

	if conf.Reminders.Enabled {
		scheduler := services.NewScheduler(log, store, services.NewEmailService(log), conf.Analytics.DefaultLocation())
		scheduler.Start(ctx)
	}

	// Setup router, passing the logger to it
	r := router.Setup(log, conf.Server, deps)

	// Start the Gin server
	srv := &http.Server{Addr: ":" + conf.Server.Port, Handler: r}
	go func() {
		log.Info("Server listening on http://localhost" + srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to run Gin server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
}
