package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kingsbal/kingsbal-backend/internal/config"
	"github.com/kingsbal/kingsbal-backend/internal/handler"
	"github.com/kingsbal/kingsbal-backend/internal/middleware"
	"github.com/kingsbal/kingsbal-backend/internal/response"
	"github.com/kingsbal/kingsbal-backend/internal/storage"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Exam       *handler.ExamHandler
	Question   *handler.QuestionHandler
	Curriculum *handler.CurriculumHandler
	AI         *handler.AIHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	handlers *Handlers,
	store *storage.Store,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check. Reports which persistence mode the service resolved at
	// startup so operators can tell a demo deployment from a degraded one.
	router.GET("/health", func(c *gin.Context) {
		mode := "demo"
		if store.Persistent() {
			mode = "persistent"
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "mode": mode})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/nursing-questions", handlers.Question.PublicQuestions)
		publicAPI.GET("/topics", handlers.Curriculum.ListTopics)
	}

	// ─── 1. Exam Group (JWT + Subscription) ────────────────────────────
	examAPI := router.Group("/api/v1/exams")
	examAPI.Use(
		middleware.RequireJWT(cfg.JWTSecret),
		middleware.RequireSubscription(store, log),
	)
	{
		examAPI.POST("/start", handlers.Exam.StartExam)
		examAPI.POST("/submit", handlers.Exam.SubmitExam)
	}

	// ─── 2. Study Group (JWT) ──────────────────────────────────────────
	studyAPI := router.Group("/api/v1")
	studyAPI.Use(middleware.RequireJWT(cfg.JWTSecret))
	{
		studyAPI.GET("/topics", handlers.Curriculum.ListTopics)
		studyAPI.GET("/topics/:id", handlers.Curriculum.GetTopic)
		studyAPI.GET("/questions/:topic", handlers.Question.ListByTopic)
		studyAPI.GET("/questions/:topic/clinical", handlers.Question.ListClinical)
	}

	// ─── 3. Admin Group (JWT + Role) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireJWT(cfg.JWTSecret),
		middleware.RequireAdmin(),
	)
	{
		adminAPI.POST("/topics", handlers.Curriculum.CreateTopic)
		adminAPI.POST("/questions/generate", handlers.AI.GenerateQuestion)
	}

	return router
}
