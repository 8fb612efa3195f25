package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadilmartias/talent-vault/internal/config"
	"github.com/fadilmartias/talent-vault/internal/domain/fiber/handler"
	"github.com/fadilmartias/talent-vault/internal/metrics"
	"github.com/fadilmartias/talent-vault/internal/middleware"
	"github.com/fadilmartias/talent-vault/internal/repository"
	"github.com/fadilmartias/talent-vault/internal/storage"
	"github.com/fadilmartias/talent-vault/internal/usecase"
	"github.com/fadilmartias/talent-vault/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	// Refuse to start with an incomplete environment.
	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	appConfig := config.LoadAppConfig()
	dbConfig := config.LoadDBConfig()
	storageConfig, err := config.LoadStorageConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logr := util.InitLogger(appConfig.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := ConnectDB(logr, dbConfig, appConfig)
	if err != nil {
		logr.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	candidateRepo, err := repository.NewCandidateRepository(db, dbConfig.Collection)
	if err != nil {
		logr.Error("invalid candidate table", "error", err)
		os.Exit(1)
	}
	migrateCtx, cancel := context.WithTimeout(ctx, time.Minute)
	err = candidateRepo.Migrate(migrateCtx)
	cancel()
	if err != nil {
		logr.Error("migration failed", "error", err)
		os.Exit(1)
	}

	blobs, err := ConnectStorage(ctx, logr, storageConfig)
	if err != nil {
		logr.Error("blob storage init failed", "error", err)
		os.Exit(1)
	}

	mtr := metrics.New()
	uc := usecase.NewCandidateUsecase(candidateRepo, blobs, usecase.CandidateOptions{
		StorageTimeout: storageConfig.Timeout,
		DBTimeout:      dbConfig.Timeout,
		Metrics:        mtr,
		Logger:         logr,
	})

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: appConfig.BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			} else {
				logr.Error("unhandled error", "path", c.Path(), "error", err)
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			return candidateRepo.Ping(pingCtx) == nil
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(mtr.Middleware())
	app.Use(middleware.RateLimiter(300, time.Minute))

	app.Get("/metrics", adaptor.HTTPHandler(mtr.Handler()))
	handler.NewCandidateHandler(uc, logr).RegisterRoutes(app)

	go func() {
		<-ctx.Done()
		logr.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logr.Error("shutdown failed", "error", err)
		}
	}()

	logr.Info("server running", "port", appConfig.Port, "env", appConfig.Env, "storage_driver", storageConfig.Driver)
	if err := app.Listen(appConfig.Port); err != nil {
		logr.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func ConnectDB(logr *slog.Logger, dbConfig *config.DBConfig, appConfig *config.AppConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{
		Logger: gormlogger.New(slog.NewLogLogger(logr.Handler(), slog.LevelWarn), gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}

func ConnectStorage(ctx context.Context, logr *slog.Logger, cfg *config.StorageConfig) (storage.BlobStore, error) {
	blobs, err := storage.New(ctx, storage.Options{
		Driver:    cfg.Driver,
		Endpoint:  cfg.Endpoint,
		UseSSL:    cfg.UseSSL,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Region:    cfg.Region,
		Bucket:    cfg.Container,
	})
	if err != nil {
		return nil, err
	}
	if !blobs.CanSign() {
		logr.Warn("no storage signing key configured, downloads will use direct URLs")
		return blobs, nil
	}
	if ms, ok := blobs.(*storage.MinioStore); ok {
		ensureCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		if err := ms.EnsureBucket(ensureCtx); err != nil {
			return nil, err
		}
	}
	return blobs, nil
}
