package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/craftfolio/engine/internal/api"
	"github.com/craftfolio/engine/internal/api/handlers"
	"github.com/craftfolio/engine/internal/api/middleware"
	"github.com/craftfolio/engine/internal/repository"
	"github.com/craftfolio/engine/internal/services"
	"github.com/craftfolio/engine/pkg/config"
	"github.com/craftfolio/engine/pkg/database"
	"github.com/craftfolio/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting craftfolio engine",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx := context.Background()
	db, err := database.OpenMySQL(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	log.Info("database connected")

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		log.Warn("JWT_SECRET not set, using insecure default")
		jwtSecret = []byte("change-me-in-production-please")
	}

	probe := repository.NewSchemaProbe(db)
	accountRepo := repository.NewAccountRepository(db, probe)
	resumeRepo := repository.NewResumeRepository(db, probe)
	viewRepo := repository.NewViewRepository(db)

	authSvc := services.NewAuthService(accountRepo, jwtSecret)
	resumeSvc := services.NewResumeService(resumeRepo, viewRepo)
	portfolioSvc := services.NewPortfolioService(resumeRepo, accountRepo, viewRepo)

	generatorSvc, err := services.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("gemini client init failed", zap.Error(err))
	}

	s3Client, err := newS3Client(ctx, cfg)
	if err != nil {
		log.Fatal("s3 client init failed", zap.Error(err))
	}
	uploadSvc := services.NewS3Uploader(s3Client, cfg.S3Bucket, cfg.S3PublicBaseURL)

	verbose := !cfg.Production()
	loginLimiter := middleware.NewLoginLimiter(5, 15*time.Minute)

	router := api.NewRouter(api.Dependencies{
		Auth:        handlers.NewAuthHandler(authSvc, accountRepo, loginLimiter, verbose),
		Resume:      handlers.NewResumeHandler(resumeSvc, verbose),
		Portfolio:   handlers.NewPortfolioHandler(portfolioSvc, verbose),
		Generate:    handlers.NewGenerateHandler(generatorSvc, verbose),
		Upload:      handlers.NewUploadHandler(uploadSvc, verbose),
		Health:      handlers.NewHealthHandler(db),
		JWTSecret:   jwtSecret,
		RateLimiter: middleware.NewIPRateLimiter(rate.Every(time.Second), 20),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}

// newS3Client supports AWS proper and S3-compatible stores (R2, MinIO) via
// the optional endpoint override.
func newS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = &cfg.S3Endpoint
		}
		o.UsePathStyle = cfg.S3Endpoint != ""
	}), nil
}
