package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/notehub/notehub/config"
	"github.com/notehub/notehub/handler"
	"github.com/notehub/notehub/middleware"
	"github.com/notehub/notehub/repository"
	"github.com/notehub/notehub/services"
	"github.com/notehub/notehub/usecase"
	"github.com/notehub/notehub/utils"
)

func setupRouter(cfg *config.Config, logger *zap.Logger,
	authHandler *handler.AuthHandler, notesHandler *handler.NotesHandler,
	healthHandler *handler.HealthHandler, tokens *services.TokenService) *gin.Engine {

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestSizeLimiter(cfg.MaxBodyBytes))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is up and running")
	})
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := router.Group("/api/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
	}

	notes := router.Group("/api/notes")
	notes.Use(middleware.AuthMiddleware(tokens))
	{
		notes.POST("", notesHandler.Create)
		notes.GET("", notesHandler.List)
		notes.GET("/:id", notesHandler.Get)
		notes.PUT("/:id", notesHandler.Update)
		notes.DELETE("/:id", notesHandler.Delete)
	}

	return router
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()

	mongoClient, err := utils.NewMongoClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB)
	if err := repository.SetupIndexes(db); err != nil {
		return err
	}
	logger.Info("connected to mongodb", zap.String("database", cfg.MongoDB))

	// The note cache is optional; without Redis every list hits the store.
	var noteCache *services.NoteCache
	if cfg.RedisURL != "" {
		noteCache, err = services.NewNoteCache(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			return err
		}
		defer noteCache.Close()
		logger.Info("note cache enabled")
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	userService := &usecase.UserService{
		Users:  repository.NewUserRepo(db),
		Tokens: tokens,
	}
	noteService := &usecase.NoteService{
		Notes: repository.NewNoteRepo(db),
		Cache: noteCache,
	}

	router := setupRouter(cfg, logger,
		handler.NewAuthHandler(userService, logger),
		handler.NewNotesHandler(noteService, logger),
		handler.NewHealthHandler(mongoClient),
		tokens,
	)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
