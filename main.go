package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"assessment-service/internal/config"
	"assessment-service/internal/db"
	"assessment-service/internal/event"
	"assessment-service/internal/handlers"
	"assessment-service/internal/repository"
	"assessment-service/internal/service"
	"assessment-service/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()
	if cfg.MongoDB.URI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(cfg.MongoDB.URI)
	defer db.DisconnectMongo()
	db.InitRedis(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQ.URI != "" && cfg.RabbitMQ.Exchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(cfg.MongoDB.Database)

	// Content collaborator data: questions, schemes, roadmap manifests
	questionRepo := repository.NewQuestionRepository(database)
	schemeRepo := repository.NewSchemeRepository(database)
	roadmapRepo := repository.NewRoadmapRepository(database)

	// Attempt history
	attemptRepo := repository.NewAttemptRepository(database)

	// Resource completions need their uniqueness constraint before the
	// service accepts traffic
	completionRepo := repository.NewCompletionRepository(database)
	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := completionRepo.EnsureIndexes(indexCtx); err != nil {
		cancel()
		log.Fatalf("Failed to create completion indexes: %v", err)
	}
	cancel()

	// Session mirror
	sessionStore := session.NewRedisStore(db.RedisClient)

	quizService := service.NewQuizService(questionRepo, schemeRepo, attemptRepo, sessionStore)
	quizHandler := handlers.NewQuizHandler(quizService)

	attemptService := service.NewAttemptService(attemptRepo)
	attemptHandler := handlers.NewAttemptHandler(attemptService)

	progressService := service.NewProgressService(roadmapRepo, completionRepo)
	progressHandler := handlers.NewProgressHandler(progressService)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Assessment service is healthy")
	})

	// Public routes - quiz content and attempt queries
	public := r.Group("/public/assessment")
	{
		public.GET("/quiz/:phase", quizHandler.GetQuiz)
		public.GET("/user/:id/attempts", attemptHandler.GetHistory)
		public.GET("/attempt/:id", attemptHandler.GetDetail)
	}

	setupProtectedRoutes(r, quizHandler, attemptHandler, progressHandler, publisher)

	r.Run(":" + cfg.Server.Port)
}

func setupProtectedRoutes(
	r *gin.Engine,
	quizHandler *handlers.QuizHandler,
	attemptHandler *handlers.AttemptHandler,
	progressHandler *handlers.ProgressHandler,
	publisher *event.EventPublisher,
) {
	protected := r.Group("/protected/assessment")

	// Identity comes from the auth collaborator upstream
	protected.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})

	// === QUIZ SESSIONS AND SUBMISSION ===

	protected.POST("/quiz/:phase/submit", func(c *gin.Context) {
		quizHandler.SubmitQuiz(c)
		publisher.Publish(event.AttemptCreated, gin.H{
			"user_id": c.GetHeader("X-User-ID"),
			"phase":   c.Param("phase"),
			"status":  c.Writer.Status(),
		})
	})

	protected.GET("/session/:phase", quizHandler.GetSession)

	protected.PUT("/session/:phase", func(c *gin.Context) {
		quizHandler.SaveSession(c)
		publisher.Publish(event.SessionSaved, gin.H{
			"user_id": c.GetHeader("X-User-ID"),
			"phase":   c.Param("phase"),
		})
	})

	// === ROADMAP PROGRESS ===

	protected.POST("/roadmap/:roadmapId/day/:day/resource/:resourceId/complete", func(c *gin.Context) {
		progressHandler.MarkResourceComplete(c)
		publisher.Publish(event.ResourceCompleted, gin.H{
			"user_id":     c.GetHeader("X-User-ID"),
			"roadmap_id":  c.Param("roadmapId"),
			"day_number":  c.Param("day"),
			"resource_id": c.Param("resourceId"),
		})
	})

	protected.GET("/roadmap/:roadmapId/progress", progressHandler.GetTaskProgress)
	protected.GET("/roadmap/:roadmapId/day/:day/result", attemptHandler.GetDayResult)
}
