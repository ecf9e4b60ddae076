package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	boardHTTP "board/internal/controller/http"
	"board/internal/model"
	"board/internal/repo/cache"
	"board/internal/repo/persistent"
	"board/internal/usecase"
	redisCache "board/pkg/cache"
	"board/pkg/config"
	"board/pkg/database"
	"board/pkg/filestore"
	"board/pkg/logger"
	"board/pkg/middleware"
	"board/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "board/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	files       filestore.Store
	metrics     *middleware.Metrics
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.Open(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	if cfg.DBDriver == config.DriverSQLite || cfg.DBAutoMigrate {
		if err := db.AutoMigrate(&model.PostModel{}); err != nil {
			log.Error("Failed to migrate database: %v", err)
			return nil, err
		}
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = redisCache.NewRedisClient(cfg)
		if err != nil {
			// Redis is optional: no post cache and no rate limiting
			log.Error("Failed to connect to redis: %v (continuing without cache)", err)
			redisClient = nil
		}
	}

	files, err := filestore.New(cfg)
	if err != nil {
		log.Error("Failed to create file store: %v", err)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		files:       files,
		metrics:     middleware.NewMetrics(),
	}, nil
}

// Router wires repositories, use case and handlers into a gin engine.
func (a *App) Router() (*gin.Engine, error) {
	// Initialize repositories
	postRepo := persistent.NewPostRepository(a.db)
	postCache := cache.NewPostCache(a.redisClient, a.log)

	// Initialize use cases
	boardUseCase := usecase.NewBoardUseCase(postRepo, a.files, postCache, a.log)

	// Initialize HTTP handlers
	boardHandler := boardHTTP.NewBoardHandler(boardUseCase, a.log)

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	gin.SetMode(a.cfg.GinMode)
	r := gin.New()
	r.Use(gin.LoggerWithWriter(a.log.Writer()), gin.RecoveryWithWriter(a.log.Writer()))
	r.SetHTMLTemplate(templates)
	r.MaxMultipartMemory = 32 << 20

	// CORS middleware
	corsConfig := cors.Config{
		AllowOrigins:     a.cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))
	r.Use(a.metrics.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(a.metrics.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/board/list")
	})

	switch files := a.files.(type) {
	case *filestore.Local:
		r.Static(usecase.FilesURLPrefix, files.Dir())
	case *filestore.S3:
		r.GET(usecase.FilesURLPrefix+":name", func(c *gin.Context) {
			c.Redirect(http.StatusFound, files.URL(c.Param("name")))
		})
	}

	limiter := middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitPerMinute, time.Minute, a.log)

	board := r.Group("/board")
	board.Use(limiter)
	{
		board.GET("/write", boardHandler.WriteForm)
		board.POST("/writepro", boardHandler.WritePro)
		board.GET("/list", boardHandler.List)
		board.GET("/view", boardHandler.View)
		board.GET("/delete", boardHandler.Delete)
		board.POST("/delete", boardHandler.Delete)
		board.GET("/modify/:id", boardHandler.ModifyForm)
		board.POST("/update/:id", boardHandler.Update)
	}

	api := r.Group("/api/v1")
	api.Use(limiter)
	{
		api.GET("/posts", boardHandler.ListPosts)
		api.POST("/posts", boardHandler.CreatePost)
		api.GET("/posts/:id", boardHandler.GetPost)
		api.PUT("/posts/:id", boardHandler.UpdatePost)
		api.DELETE("/posts/:id", boardHandler.DeletePost)
	}

	return r, nil
}

func (a *App) Run() error {
	r, err := a.Router()
	if err != nil {
		return err
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Board service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down board service...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	a.log.Info("Board service exited")
	_ = a.log.Sync()
	return shutdownErr
}
