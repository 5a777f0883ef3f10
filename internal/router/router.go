package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/milan-codes/studician-api/internal/auth"
	"github.com/milan-codes/studician-api/internal/config"
	"github.com/milan-codes/studician-api/internal/handler"
	"github.com/milan-codes/studician-api/internal/middleware"
	"github.com/milan-codes/studician-api/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Subject *handler.SubjectHandler
	Lesson  *handler.LessonHandler
	Task    *handler.TaskHandler
	Exam    *handler.ExamHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// Every collection group sits behind the ownership check: the token's
// principal must match the :userId path segment.
func SetupRouter(verifier auth.Verifier, handlers *Handlers, cfg *config.Config) *gin.Engine {
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID", middleware.HeaderAuthToken}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := middleware.NewRateLimiter(120, time.Minute)
	owned := func(base string) *gin.RouterGroup {
		g := router.Group(base + "/:userId")
		g.Use(limiter.Middleware(), middleware.RequireOwner(verifier))
		return g
	}

	// ─── Subjects ──────────────────────────────────────────────────────
	subjects := owned("/subjects")
	{
		subjects.GET("", handlers.Subject.List)
		subjects.GET("/:subjectId", handlers.Subject.Get)
		subjects.POST("", handlers.Subject.Create)
		subjects.PUT("/:subjectId", handlers.Subject.Update)
		subjects.DELETE("/:subjectId", handlers.Subject.Delete)
	}

	// ─── Lessons ───────────────────────────────────────────────────────
	lessons := owned("/lessons")
	{
		lessons.GET("", handlers.Lesson.List)
		lessons.GET("/:subjectId", handlers.Lesson.ListBySubject)
		lessons.GET("/:subjectId/:lessonId", handlers.Lesson.Get)
		lessons.POST("", handlers.Lesson.Create)
		lessons.PUT("/:subjectId/:lessonId", handlers.Lesson.Update)
		lessons.DELETE("/:subjectId/:lessonId", handlers.Lesson.Delete)
	}

	// ─── Tasks ─────────────────────────────────────────────────────────
	tasks := owned("/tasks")
	{
		tasks.GET("", handlers.Task.List)
		tasks.GET("/:subjectId", handlers.Task.ListBySubject)
		tasks.GET("/:subjectId/:taskId", handlers.Task.Get)
		tasks.POST("", handlers.Task.Create)
		tasks.PUT("/:subjectId/:taskId", handlers.Task.Update)
		tasks.DELETE("/:subjectId/:taskId", handlers.Task.Delete)
	}

	// ─── Exams ─────────────────────────────────────────────────────────
	exams := owned("/exams")
	{
		exams.GET("", handlers.Exam.List)
		exams.GET("/:subjectId", handlers.Exam.ListBySubject)
		exams.GET("/:subjectId/:examId", handlers.Exam.Get)
		exams.POST("", handlers.Exam.Create)
		exams.PUT("/:subjectId/:examId", handlers.Exam.Update)
		exams.DELETE("/:subjectId/:examId", handlers.Exam.Delete)
	}

	return router
}
