package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/haneulsoft/timetable-backend/internal/config"
	"github.com/haneulsoft/timetable-backend/internal/handler"
	"github.com/haneulsoft/timetable-backend/internal/middleware"
	"github.com/haneulsoft/timetable-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Catalog *handler.CatalogHandler
	Planner *handler.PlannerHandler
	WS      *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// The ranked catalog payload is large and repetitive; compress it.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Selection mutations are cheap but client bugs can hammer them.
	mutationLimiter := middleware.NewRateLimiter(120, time.Minute)

	// ─── 1. Catalog (Read-Only, Cacheable) ─────────────────────────────
	catalogAPI := router.Group("/api/v1/catalog")
	catalogAPI.Use(middleware.CacheControl(30))
	{
		catalogAPI.GET("/summary", handlers.Catalog.GetSummary)
		catalogAPI.GET("/sections", handlers.Catalog.ListSections)
		catalogAPI.GET("/sections/:section_id", handlers.Catalog.GetSection)
	}

	// ─── 2. Planner (Per-Planner State) ────────────────────────────────
	plannerAPI := router.Group("/api/v1/planners/:planner_id")
	{
		plannerAPI.GET("/sections", handlers.Planner.ListSections)
		plannerAPI.GET("/selection", handlers.Planner.GetSelection)
		plannerAPI.GET("/schedule", handlers.Planner.GetSchedule)

		mutations := plannerAPI.Group("")
		mutations.Use(mutationLimiter.Middleware())
		{
			mutations.POST("/selection", handlers.Planner.AddSelection)
			mutations.DELETE("/selection/:section_id", handlers.Planner.RemoveSelection)
			mutations.DELETE("/selection", handlers.Planner.ResetSelection)
		}
	}

	// ─── 3. WebSocket ──────────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/planners/:planner_id/stream", handlers.WS.ScheduleStream)
	}

	return router
}
