package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasklist/internal/access"
	"tasklist/internal/config"
	"tasklist/internal/database"
	"tasklist/internal/handler"
	"tasklist/internal/middleware"
	"tasklist/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Database schema is up to date")

	return &Server{
		Engine: NewRouter(db, cfg),
		DB:     db,
		Config: cfg,
	}, nil
}

// NewRouter builds the gin engine with all routes wired. Split out from
// Init so tests can run the full HTTP surface against their own database.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	// Initialize repositories and the access resolver
	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewTaskListRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	shareRepo := repository.NewShareRepository(db)
	resolver := access.NewResolver(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	listHandler := handler.NewTaskListHandler(listRepo, resolver)
	taskHandler := handler.NewTaskHandler(taskRepo, resolver)
	shareHandler := handler.NewShareHandler(shareRepo, userRepo, resolver)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Public routes, rate limited
	authRoutes := api.Group("/auth")
	authRoutes.Use(middleware.RateLimitMiddleware(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))
	{
		authRoutes.POST("/register", userHandler.Register)
		authRoutes.POST("/login", userHandler.Login)
	}

	// Protected routes - require authentication
	authorized := api.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Task list routes
		authorized.GET("/tasklists", listHandler.GetAll)
		authorized.GET("/tasklists/:id", listHandler.GetByID)
		authorized.POST("/tasklists", listHandler.Create)
		authorized.PUT("/tasklists/:id", listHandler.Update)
		authorized.DELETE("/tasklists/:id", listHandler.Delete)

		// Task routes
		authorized.GET("/tasks/:listId", taskHandler.List)
		authorized.POST("/tasks/:listId", taskHandler.Create)
		authorized.PUT("/tasks/:listId/:taskId", taskHandler.Update)
		authorized.PATCH("/tasks/:listId/:taskId/status", taskHandler.UpdateStatus)
		authorized.DELETE("/tasks/:listId/:taskId", taskHandler.Delete)

		// Share routes
		authorized.POST("/shares/:listId", shareHandler.Grant)
		authorized.GET("/shares/:listId", shareHandler.List)
		authorized.PUT("/shares/:listId/:shareId", shareHandler.UpdatePermission)
		authorized.DELETE("/shares/:listId/:shareId", shareHandler.Revoke)
	}

	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
