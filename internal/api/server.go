package api

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"shopfront/internal/app/config"
	"shopfront/internal/app/dsn"
	"shopfront/internal/app/handler"
	"shopfront/internal/app/metrics"
	"shopfront/internal/app/middleware"
	"shopfront/internal/app/order"
	"shopfront/internal/app/redis"
	"shopfront/internal/app/repository"
	"shopfront/internal/app/storage"
	"shopfront/internal/pkg"
	"shopfront/internal/pkg/tracer"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "shopfront"

// SetupLogging applies the configured logrus level and format.
func SetupLogging(c config.LogConfig) {
	if c.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", c.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
}

// NewBlobStore picks the image store from config.
func NewBlobStore(ctx context.Context, c config.StorageConfig) (storage.BlobStore, error) {
	switch c.Driver {
	case "", "local":
		return storage.NewLocalStore(c.LocalDir)
	case "minio":
		return storage.NewMinIOStore(ctx, c.MinIO.Endpoint, c.MinIO.AccessKey, c.MinIO.SecretKey, c.MinIO.Bucket, c.MinIO.UseSSL)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", c.Driver)
	}
}

func StartServer() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	SetupLogging(cfg.Log)

	ctx := context.Background()

	dialector, err := dsn.Dialector(cfg.DB)
	if err != nil {
		return err
	}
	repo, err := repository.New(dialector)
	if err != nil {
		return fmt.Errorf("ошибка инициализации репозитория: %w", err)
	}

	blobs, err := NewBlobStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	var blacklist middleware.Blacklist
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		blacklist = redisClient
	} else {
		logrus.Warn("redis is not configured, logout will only clear the session cookie")
	}

	location, err := time.LoadLocation(cfg.Shop.Location)
	if err != nil {
		return fmt.Errorf("shop location: %w", err)
	}
	composer := order.NewComposer(order.Settings{
		ShopName:       cfg.Shop.Name,
		Contact:        cfg.Shop.Contact,
		Currency:       cfg.Shop.Currency,
		DefaultPayment: cfg.Shop.DefaultPayment,
		Location:       location,
	})

	h := handler.NewHandler(repo, blobs, middleware.NewAuthMiddleware(blacklist, cfg), composer, metrics.New())

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	application := pkg.NewApp(cfg, r, h)
	application.OnShutdown(func(context.Context) error { return repo.Close() })
	if redisClient != nil {
		application.OnShutdown(func(context.Context) error { return redisClient.Close() })
	}

	if cfg.Tracing.Endpoint != "" {
		tp, err := tracer.Init(ctx, serviceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		r.Use(otelgin.Middleware(serviceName))
		application.OnShutdown(tp.Shutdown)
	}

	return application.RunApp()
}
