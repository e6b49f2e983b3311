package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"machinery-registry/internal/repositories"
	"machinery-registry/internal/routes"
	"machinery-registry/pkg/config"
	"machinery-registry/pkg/customvalidator"
	"machinery-registry/pkg/database"
	apperrors "machinery-registry/pkg/errors"
	"machinery-registry/pkg/eventbus"
	"machinery-registry/pkg/filestorage"
	applogger "machinery-registry/pkg/logger"
	"machinery-registry/pkg/middleware"
	"machinery-registry/pkg/service"
	"machinery-registry/pkg/utils"
	"machinery-registry/pkg/websocket"
	"machinery-registry/seeders"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. database
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("could not open database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	defer db.Close()

	if err := database.Migrate(db, logger.Named("migrate")); err != nil {
		logger.Fatal("could not apply migrations", zap.Error(err))
	}
	if _, err := seeders.EnsureAdmin(ctx, repositories.NewUserRepository(db, logger), cfg.Admin, logger); err != nil {
		logger.Fatal("could not create admin user", zap.Error(err))
	}

	// 2. cache
	cacheRepo := newCache(ctx, cfg.Redis, logger)

	// 3. events and live feed
	bus := eventbus.New(logger.Named("events"))
	hub := websocket.NewHub(logger.Named("ws"))
	go hub.Run(ctx)

	storage, err := filestorage.NewLocalFileStorage(cfg.Server.UploadDir)
	if err != nil {
		logger.Fatal("could not prepare upload directory", zap.Error(err))
	}

	// 4. http
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger.Named("http")))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("could not register validation rules", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.TokenTTL)
	routes.InitRouter(e, routes.Dependencies{
		DB:      db,
		Cache:   cacheRepo,
		JWT:     jwtSvc,
		Bus:     bus,
		Hub:     hub,
		Storage: storage,
		Config:  cfg,
	}, &routes.Loggers{
		Main:       logger,
		Auth:       logger.Named("auth"),
		Assignment: logger.Named("assignment"),
	})

	if cfg.Server.StaticDir != "" {
		e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Root:  cfg.Server.StaticDir,
			HTML5: true,
		}))
	}

	// 5. serve until a signal arrives
	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port), zap.String("db", cfg.Database.Driver))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	bus.Wait()
}

// newCache uses Redis when an address is configured and it answers, the
// in-process cache otherwise.
func newCache(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) repositories.CacheRepositoryInterface {
	if cfg.Address == "" {
		logger.Info("cache: in-process")
		return repositories.NewMemoryCacheRepository(5 * time.Minute)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("cache: redis unreachable, using in-process cache", zap.String("address", cfg.Address), zap.Error(err))
		_ = client.Close()
		return repositories.NewMemoryCacheRepository(5 * time.Minute)
	}
	logger.Info("cache: redis", zap.String("address", cfg.Address))
	return repositories.NewRedisCacheRepository(client)
}
