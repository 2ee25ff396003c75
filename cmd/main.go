package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/Gi2009/cod-back/internal/api/http/context"
	"github.com/Gi2009/cod-back/internal/api/http/router"
	httpServer "github.com/Gi2009/cod-back/internal/api/http/server"
	"github.com/Gi2009/cod-back/internal/config"
	"github.com/Gi2009/cod-back/internal/logger"
	"github.com/Gi2009/cod-back/internal/model"
	"github.com/Gi2009/cod-back/internal/password"
	"github.com/Gi2009/cod-back/internal/repository/postgres"
	"github.com/Gi2009/cod-back/internal/server"
	"github.com/Gi2009/cod-back/internal/service"
	minioStorage "github.com/Gi2009/cod-back/internal/storage/minio"
	s3Storage "github.com/Gi2009/cod-back/internal/storage/s3"
	"github.com/Gi2009/cod-back/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig(".env")
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	mediaHost, err := newMediaHost(ctx, cfg.Media)
	if err != nil {
		logger.Fatal("failed to initialize media host", "error", err, "driver", cfg.Media.Driver)
	}

	userRepo := postgres.NewUserRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)
	hasher := password.NewBcrypt(cfg.Bcrypt.Cost)

	authService := service.NewAuth(userRepo, hasher, tokenManager, logger)
	activityService := service.NewActivity(activityRepo, mediaHost, service.Paging{
		DefaultPage:  1,
		DefaultLimit: cfg.Pagination.DefaultLimit,
		MaxLimit:     cfg.Pagination.MaxLimit,
	}, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(authService, activityService, authService, db, ctxMgr, router.Options{
		BasePath:           cfg.HTTP.BasePath,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		MaxBodyBytes:       cfg.HTTP.MaxBodyBytes,
	}, logger)

	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadHeaderTimeout)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newMediaHost(ctx context.Context, cfg config.Media) (model.MediaHost, error) {
	switch cfg.Driver {
	case config.MediaDriverS3:
		return s3Storage.NewClient(ctx, s3Storage.Options{
			Endpoint:  cfg.Endpoint,
			UseSSL:    cfg.UseSSL,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
			PublicURL: cfg.PublicURL,
		})
	default:
		minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return minioStorage.NewClient(ctx, minioClient, cfg.Bucket, cfg.PublicURL)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
