package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	jwtauth "github.com/xw1nchester/dealscan-backend/internal/auth/jwt"
	"github.com/xw1nchester/dealscan-backend/internal/config"
	"github.com/xw1nchester/dealscan-backend/internal/logging"
	storedb "github.com/xw1nchester/dealscan-backend/internal/market/store/db"
	storehandler "github.com/xw1nchester/dealscan-backend/internal/market/store/handler"
	storeservice "github.com/xw1nchester/dealscan-backend/internal/market/store/service"
	"github.com/xw1nchester/dealscan-backend/internal/metrics"
	scandb "github.com/xw1nchester/dealscan-backend/internal/scan/db"
	"github.com/xw1nchester/dealscan-backend/internal/scan/fetcher"
	scanhandler "github.com/xw1nchester/dealscan-backend/internal/scan/handler"
	"github.com/xw1nchester/dealscan-backend/internal/scan/orchestrator"
	"github.com/xw1nchester/dealscan-backend/internal/scan/progress"
	scanservice "github.com/xw1nchester/dealscan-backend/internal/scan/service"
	pgclient "github.com/xw1nchester/dealscan-backend/pkg/client/postgresql"
	redisclient "github.com/xw1nchester/dealscan-backend/pkg/client/redis"
	pgtx "github.com/xw1nchester/dealscan-backend/pkg/transactor/postgresql"
	"go.uber.org/zap"

	_ "github.com/xw1nchester/dealscan-backend/docs"
)

const (
	sourceMock = "mock"
	sourceHTTP = "http"
)

type App struct {
	HTTPServer *http.Server

	scans  interface{ Shutdown(ctx context.Context) error }
	pool   *pgxpool.Pool
	redis  *goredis.Client
	logger *zap.Logger
}

func NewApp(log *zap.Logger, cfg *config.Config) *App {
	pgClient, err := pgclient.NewClient(context.TODO(), cfg.PostgreSQL)
	if err != nil {
		log.Fatal(err.Error())
	}

	redisClient, progressStore := newProgressStore(log, cfg.Redis)

	source, err := newFetcher(log, cfg)
	if err != nil {
		log.Fatal(err.Error())
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	tokenManager := jwtauth.NewManager(cfg.JWT)

	authMiddleware := jwtauth.NewMiddleware(log, tokenManager)

	txManager := pgtx.NewPgManager(pgClient)

	storeRepository := storedb.New(pgClient, log)

	storeService := storeservice.New(storeRepository, log)

	scanRepository := scandb.New(pgClient, log)

	runner := orchestrator.New(
		fetcher.WithStoreFilter(source),
		orchestrator.Config{
			PaceInterval: cfg.Scan.PaceInterval,
			Concurrency:  cfg.Scan.Concurrency,
		},
		appMetrics,
		log,
	)

	scanService := scanservice.New(
		scanRepository,
		storeService,
		progressStore,
		runner,
		txManager,
		appMetrics,
		scanservice.Config{
			RunTimeout: cfg.Scan.RunTimeout,
			PageSize:   cfg.Scan.PageSize,
		},
		log,
	)

	router := chi.NewRouter()

	router.Use(
		middleware.RequestID,
		logging.Middleware(log),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.HTTPServer.AllowedOrigins,
			AllowedMethods:   cfg.HTTPServer.AllowedMethods,
			AllowedHeaders:   cfg.HTTPServer.AllowedHeaders,
			AllowCredentials: cfg.HTTPServer.AllowCredentials,
		}),
		middleware.Recoverer,
	)

	router.Get("/swagger/*", httpSwagger.Handler())
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", PingHandler)

		storeHandler := storehandler.New(storeService, authMiddleware, log)

		log.Info("register store handlers")

		storeHandler.Register(r)

		scanHandler := scanhandler.New(scanService, authMiddleware, log)

		log.Info("register scan handlers")

		scanHandler.Register(r)
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		HTTPServer: srv,
		scans:      scanService,
		pool:       pgClient,
		redis:      redisClient,
		logger:     log,
	}
}

// newProgressStore prefers redis. Progress is a cache over the scans table, so the
// server still starts with an in-process store when redis is unreachable.
func newProgressStore(log *zap.Logger, rc config.Redis) (*goredis.Client, scanservice.ProgressStore) {
	client, err := redisclient.NewClient(context.TODO(), rc)
	if err != nil {
		log.Warn("redis is unavailable, keeping progress in memory", zap.Error(err))
		return nil, progress.NewMemoryStore(rc.ProgressTTL)
	}

	return client, progress.NewRedisStore(client, rc.ProgressTTL, log)
}

func newFetcher(log *zap.Logger, cfg *config.Config) (fetcher.Fetcher, error) {
	switch cfg.Scan.Source {
	case sourceHTTP:
		return fetcher.NewRetailerClient(fetcher.RetailerConfig{
			BaseURL:    cfg.Retailer.BaseURL,
			Timeout:    cfg.Retailer.Timeout,
			UserAgent:  cfg.Retailer.UserAgent,
			RetryCount: cfg.Retailer.RetryCount,
		}, log)
	case sourceMock, "":
		seed := cfg.Scan.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}

		return fetcher.NewGenerator(fetcher.GeneratorConfig{
			MinItems:              cfg.Scan.MinItems,
			MaxItems:              cfg.Scan.MaxItems,
			ClearanceProbability:  cfg.Scan.ClearanceProbability,
			SuppressedProbability: cfg.Scan.SuppressedProbability,
			ProductBaseURL:        cfg.Retailer.BaseURL,
		}, seed), nil
	default:
		return nil, fmt.Errorf("unknown scan source %q", cfg.Scan.Source)
	}
}

func (a *App) MustRun() {
	if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("failed to start server: " + err.Error())
	}
}

// Shutdown stops accepting requests, lets running scans commit what they gathered
// and closes the connections.
func (a *App) Shutdown(ctx context.Context) error {
	httpErr := a.HTTPServer.Shutdown(ctx)

	scanErr := a.scans.Shutdown(ctx)
	if scanErr != nil {
		a.logger.Warn("running scans did not finish in time", zap.Error(scanErr))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("error when closing redis client", zap.Error(err))
		}
	}

	a.pool.Close()

	return errors.Join(httpErr, scanErr)
}

// @Tags		other
// @Success	200		{string}	string
// @Failure	400,500	{object}	apperror.AppError
// @Router		/ping [get]
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}
