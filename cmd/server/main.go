package main

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/civicboard/tenantkit/modules/document"
	"github.com/civicboard/tenantkit/pkg/audit"
	"github.com/civicboard/tenantkit/pkg/config"
	"github.com/civicboard/tenantkit/pkg/environment"
	"github.com/civicboard/tenantkit/pkg/httpserver"
	"github.com/civicboard/tenantkit/pkg/logger"
	"github.com/civicboard/tenantkit/pkg/pg"
	"github.com/civicboard/tenantkit/pkg/principal"
	"github.com/civicboard/tenantkit/pkg/redis"
	"github.com/civicboard/tenantkit/pkg/requestid"
	"github.com/civicboard/tenantkit/pkg/tenant"
	"github.com/civicboard/tenantkit/pkg/tenantscope"
)

type appConfig struct {
	Environment  environment.Environment `env:"APP_ENV" envDefault:"production"`
	AppRootLabel string                  `env:"APP_ROOT_LABEL" envDefault:"app"`

	HTTP  httpserver.Config
	PG    pg.Config
	Redis redis.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Environment, "tenantkit"),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
			principal.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx := context.Background()

	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		log.Error("database connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG, log); err != nil {
		log.Error("migrations failed", logger.Error(err))
		os.Exit(1)
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	provider := tenant.NewPGProvider(pool)
	trail := audit.NewLogger(audit.NewSlogStorage(log))

	scope := tenantscope.NewFilter()
	docs := document.NewService(
		document.NewPGStorage(pool, scope),
		document.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(environment.Middleware(cfg.Environment))
	r.Use(tenant.Middleware(provider,
		tenant.WithLogger(log),
		tenant.WithAuditTrail(trail),
		tenant.WithEnvironment(cfg.Environment),
		tenant.WithReserved(cfg.AppRootLabel),
		tenant.WithCache(tenant.NewRedisCache(redisClient, "tenant")),
		tenant.WithSkipPaths([]string{"/healthz", "/readyz"}),
	))

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))
	r.Mount("/documents", document.Router(docs))

	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}
