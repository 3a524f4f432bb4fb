// Package main runs the chit fund administration HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jishnuMgit/hoardlinks-backend/config"
	"github.com/jishnuMgit/hoardlinks-backend/internal/agencies"
	"github.com/jishnuMgit/hoardlinks-backend/internal/announcements"
	"github.com/jishnuMgit/hoardlinks-backend/internal/auth"
	"github.com/jishnuMgit/hoardlinks-backend/internal/chitty"
	"github.com/jishnuMgit/hoardlinks-backend/internal/districts"
	"github.com/jishnuMgit/hoardlinks-backend/internal/meetings"
	"github.com/jishnuMgit/hoardlinks-backend/internal/middleware"
	"github.com/jishnuMgit/hoardlinks-backend/internal/models"
	"github.com/jishnuMgit/hoardlinks-backend/internal/states"
	"github.com/jishnuMgit/hoardlinks-backend/internal/uploads"
	"github.com/jishnuMgit/hoardlinks-backend/internal/worker"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/database"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/queue"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/redis"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/response"
	"github.com/jishnuMgit/hoardlinks-backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			ImagesBucket:         cfg.AWS.ImagesBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, jobQueue, logger)

	// Org tree
	stateRepo := states.NewRepository(pool)
	stateHandler := states.NewHandler(stateRepo)
	districtRepo := districts.NewRepository(pool)
	districtHandler := districts.NewHandler(districtRepo)
	agencyRepo := agencies.NewRepository(pool)
	agencyHandler := agencies.NewHandler(agencyRepo)

	// Chitty schemes
	chittyRepo := chitty.NewRepository(pool)
	chittyHandler := chitty.NewHandler(chittyRepo, authRepo, logger)

	// Notices
	announcementRepo := announcements.NewRepository(pool)
	announcementHandler := announcements.NewHandler(announcementRepo, authRepo, logger)
	meetingRepo := meetings.NewRepository(pool)
	meetingHandler := meetings.NewHandler(meetingRepo, authRepo, logger)

	// Image uploads (profile + payment proofs)
	var uploadHandler *uploads.Handler
	if s3Client != nil {
		uploadRepo := uploads.NewRepository(pool)
		uploadHandler = uploads.NewHandler(s3Client, uploadRepo, authRepo, logger)
	}

	// Push notification worker runs alongside the API.
	pushSender := worker.NewFCMSender(cfg.FCM.Endpoint, cfg.FCM.ServerKey)
	pushProcessor := worker.NewPushProcessor(pushSender, jobQueue, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	v1 := router.Group("/api/v1")

	// Auth (public)
	v1.POST("/auth/login", authHandler.Login)

	// Protected API (JWT required)
	api := v1.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		// Account creation is gated by the creator's role inside the handler.
		api.POST("/auth/register", authHandler.Register)
		api.GET("/profile", authHandler.Profile)
		api.GET("/token/check", authHandler.ValidateToken)

		// Org tree
		api.POST("/state", middleware.RequireRole(models.RoleAdmin), stateHandler.Create)
		api.GET("/state", stateHandler.List)
		api.GET("/state/:id", stateHandler.GetByID)
		api.PATCH("/state/:id", middleware.RequireRole(models.RoleAdmin), stateHandler.Update)

		api.POST("/district", middleware.RequireRole(models.RoleAdmin, models.RoleState), districtHandler.Create)
		api.GET("/district", districtHandler.List)
		api.GET("/district/:id", districtHandler.GetByID)
		api.PATCH("/district/:id", middleware.RequireRole(models.RoleAdmin, models.RoleState), districtHandler.Update)

		api.POST("/agency", middleware.RequireRole(models.RoleAdmin, models.RoleState, models.RoleDistrict), agencyHandler.Create)
		api.GET("/agency", agencyHandler.List)
		api.GET("/agency/:id", agencyHandler.GetByID)
		api.PATCH("/agency/:id", middleware.RequireRole(models.RoleAdmin, models.RoleState, models.RoleDistrict), agencyHandler.Update)

		// Chitty schemes
		api.GET("/chitty", chittyHandler.List)
		api.GET("/chitty/:id", chittyHandler.GetByID)
		api.POST("/chitty/enroll", middleware.RequireRole(models.RoleAgency), chittyHandler.Enroll)
		api.POST("/chitty/bid", chittyHandler.PlaceBid)
		api.GET("/chitty/bids/:id", chittyHandler.LeadingBids)
		api.GET("/chitty/auction/:chitty_id/:cycle_id", chittyHandler.CycleBid)

		// Announcements
		api.POST("/announcement", middleware.RequireRole(models.RoleAdmin, models.RoleState, models.RoleDistrict), announcementHandler.Create)
		api.GET("/announcement", announcementHandler.List)
		api.GET("/announcement/:id", announcementHandler.GetByID)
		api.PATCH("/announcement/:id", middleware.RequireRole(models.RoleAdmin, models.RoleState, models.RoleDistrict), announcementHandler.Update)
		api.DELETE("/announcement/:id", middleware.RequireRole(models.RoleAdmin, models.RoleState, models.RoleDistrict), announcementHandler.Delete)

		// Meetings
		api.POST("/meeting", middleware.RequireRole(models.RoleAdmin, models.RoleState, models.RoleDistrict), meetingHandler.Create)
		api.GET("/meeting", meetingHandler.List)
		api.GET("/meeting/:id", meetingHandler.GetByID)
		api.PATCH("/meeting/:id", middleware.RequireRole(models.RoleAdmin, models.RoleState, models.RoleDistrict), meetingHandler.Update)
		api.DELETE("/meeting/:id", middleware.RequireRole(models.RoleAdmin, models.RoleState, models.RoleDistrict), meetingHandler.Delete)

		// Image uploads
		if uploadHandler != nil {
			api.POST("/img/profile", uploadHandler.UploadProfileImage)
			api.POST("/img/payment", middleware.RequireRole(models.RoleAgency), uploadHandler.UploadPaymentImage)
			api.GET("/img/payment/:id", uploadHandler.PaymentImageURL)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if cfg.FCM.ServerKey != "" {
		go pushProcessor.Run(workerCtx)
		logger.Info("push worker started")
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	workerCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
