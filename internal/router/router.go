package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prashnalabs/papergen-backend/internal/config"
	"github.com/prashnalabs/papergen-backend/internal/handler"
	"github.com/prashnalabs/papergen-backend/internal/middleware"
	"github.com/prashnalabs/papergen-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Reference  *handler.ReferenceHandler
	Curriculum *handler.CurriculumHandler
	Paper      *handler.PaperHandler
	Diagram    *handler.DiagramHandler
	WS         *handler.WSHandler
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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Generation is expensive upstream; keep its budget tight.
	generateLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. API Group ──────────────────────────────────────────────────
	api := router.Group("/api/v1")

	// Reference data is static and carries nothing sensitive; served
	// without auth so clients can build their selection UI before login.
	api.GET("/boards", handlers.Reference.ListBoards)
	api.GET("/subjects", handlers.Reference.ListSubjects)

	protected := api.Group("")
	protected.Use(middleware.RequireJWT(cfg.JWTSecret))
	{
		// Chapter resolution
		protected.GET("/chapters", handlers.Curriculum.GetChapters)

		// Paper composition
		protected.POST("/papers", generateLimiter.Middleware(), handlers.Paper.GeneratePaper)
		protected.GET("/papers", handlers.Paper.ListPapers)
		protected.GET("/papers/:id", handlers.Paper.GetPaper)
		protected.GET("/papers/:id/answer-key", handlers.Paper.GetAnswerKey)
		protected.DELETE("/papers/:id", handlers.Paper.DeletePaper)

		// Diagram runs
		protected.POST("/papers/:id/diagrams", handlers.Diagram.StartDiagramRun)
		protected.GET("/papers/:id/diagrams/progress", handlers.Diagram.DiagramProgressSSE)
	}

	// ─── 2. WebSocket Group (JWT via query token) ──────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireJWT(cfg.JWTSecret))
	{
		ws.GET("/papers/:id/progress", handlers.WS.PaperProgressStream)
	}

	return router
}
