package router

import (
	"net/http"
	"time"

	"wellness-go/internal/cache"
	"wellness-go/internal/config"
	"wellness-go/internal/handlers"
	"wellness-go/internal/services"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// Dependencies are the services the HTTP API is built on.
type Dependencies struct {
	Templates     services.TemplateSource
	Assessments   *services.AssessmentService
	Insights      *services.InsightsService
	Activity      *services.ActivityService
	InsightsCache cache.InsightsCache
	LookupUser    UserLookup
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String()})
}

func Setup(log *zap.Logger, serverConf config.ServerConfig, deps Dependencies) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		IsDevelopment:         !serverConf.SecureCookies,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	store := cookie.NewStore([]byte(serverConf.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   serverConf.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})

	api := router.Group("/api")
	api.Use(sessions.Sessions("wellness_session", store))
	api.Use(CSRFProtection())
	api.Use(UserLoaderMiddleware(log, deps.LookupUser))

	authHandler := handlers.NewAuthHandler(log)
	userHandler := handlers.NewUserHandler(log, deps.InsightsCache)
	assessmentHandler := handlers.NewAssessmentHandler(log, deps.Templates, deps.Assessments)
	insightsHandler := handlers.NewInsightsHandler(log, deps.Insights)
	activityHandler := handlers.NewActivityHandler(log, deps.Activity)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	api.GET("/csrf", CSRFToken)
	api.POST("/login", limiter, authHandler.Login)
	api.POST("/register", limiter, authHandler.Register)
	api.POST("/logout", authHandler.Logout)

	api.GET("/assessments", assessmentHandler.ListTemplates)
	api.GET("/assessments/:type", assessmentHandler.GetTemplate)

	authorized := api.Group("/")
	authorized.Use(AuthRequired())
	{
		authorized.POST("/assessments/:type/submit", assessmentHandler.Submit)

		insights := authorized.Group("/insights")
		{
			insights.GET("", insightsHandler.Report)
			insights.GET("/streak", insightsHandler.Streak)
			insights.GET("/heatmap", insightsHandler.Heatmap)
			insights.GET("/timeline", insightsHandler.Timeline)
			insights.GET("/timeline/chart", insightsHandler.TimelineChart)
		}

		authorized.POST("/moods", activityHandler.LogMood)
		authorized.POST("/progress", activityHandler.LogProgress)
		authorized.GET("/plan", activityHandler.PlanModules)
		authorized.PUT("/plan/:id", activityHandler.UpdatePlanModule)

		profileRoutes := authorized.Group("/profile")
		{
			profileRoutes.GET("", userHandler.Profile)
			profileRoutes.PUT("", userHandler.UpdateInfo)
			profileRoutes.PUT("/password", userHandler.UpdatePassword)
			profileRoutes.PUT("/notifications", userHandler.UpdateNotificationSettings)
			profileRoutes.DELETE("", userHandler.DeleteAccount)
		}
	}

	return router
}
