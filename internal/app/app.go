package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinepass/purchase-service/internal/domain"
	"github.com/cinepass/purchase-service/internal/purchase"
	"github.com/cinepass/purchase-service/internal/queue"
	"github.com/cinepass/purchase-service/internal/repository"
	appvalidator "github.com/cinepass/purchase-service/internal/validator"
	"github.com/cinepass/purchase-service/internal/vcs"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

var (
	version = vcs.Version()
)

type Config struct {
	Port             int
	Env              string
	HoldWindow       time.Duration
	SweepInterval    time.Duration
	OtelCollectorURL string
	DB               DBConfig
	Redis            RedisConfig
	AMQP             AMQPConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type AMQPConfig struct {
	URL string
}

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	purchases *purchase.Service
	claims    domain.ClaimStore
	showtimes domain.ShowtimeDirectory
	halls     domain.HallGeometryProvider

	publisher *queue.Publisher
}

func New(cfg Config, logger *slog.Logger) (*Application, error) {
	db, err := newDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := newRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	purchaseRepo := repository.NewPostgresPurchaseRepository(db)
	claimStore := repository.NewPostgresClaimStore(db)
	showtimes := repository.NewCachedShowtimeDirectory(
		repository.NewPostgresShowtimeDirectory(db), redisClient, logger)
	halls := repository.NewCachedHallGeometryProvider(
		repository.NewPostgresHallGeometryProvider(db), redisClient, logger)

	var events purchase.EventPublisher = queue.NopPublisher{}
	var publisher *queue.Publisher

	if cfg.AMQP.URL != "" {
		publisher = queue.NewPublisher(cfg.AMQP.URL, logger)
		events = publisher
	}

	purchaseService := purchase.NewService(
		purchaseRepo, claimStore, showtimes, halls, events, cfg.HoldWindow, logger)

	app := &Application{
		config:    cfg,
		logger:    logger,
		db:        db,
		redis:     redisClient,
		validator: appvalidator.NewValidator(),
		purchases: purchaseService,
		claims:    claimStore,
		showtimes: showtimes,
		halls:     halls,
		publisher: publisher,
	}

	return app, nil
}

func (app *Application) Close() {
	if app.publisher != nil {
		app.publisher.Close()
	}
	if app.redis != nil {
		app.redis.Close()
	}
	if app.db != nil {
		app.db.Close()
	}
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	err = redisotel.InstrumentTracing(rdb)
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) Run() error {
	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	go app.purchases.RunSweeper(sweepCtx, app.config.SweepInterval)

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		stopSweeper()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "version", version)

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(otelchi.Middleware("purchase-service", otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(app.requestLogger)
	r.Use(app.recoverPanic)

	r.NotFound(app.notFoundResponse)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/purchases", func(r chi.Router) {
		r.Post("/initiate", app.InitiatePurchaseHandler)

		r.Route("/{purchaseId}", func(r chi.Router) {
			r.Get("/", app.GetPurchaseHandler)
			r.Put("/create", app.ConfirmPurchaseHandler)
			r.Delete("/", app.CancelPurchaseHandler)
		})
	})

	r.Get("/showtimes/{showtimeId}/seats", app.GetSeatMapByShowtimeHandler)

	return r
}
