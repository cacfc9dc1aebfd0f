package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appbusiness "github.com/lehi10/tuagenda-sub000/internal/application/business"
	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	appuser "github.com/lehi10/tuagenda-sub000/internal/application/user"
	"github.com/lehi10/tuagenda-sub000/internal/config"
	httprouter "github.com/lehi10/tuagenda-sub000/internal/infrastructure/http"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/http/handlers"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/http/middleware"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/persistence/memory"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/persistence/postgres"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/queue"
	"github.com/lehi10/tuagenda-sub000/internal/infrastructure/webhook"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()

	var pool *pgxpool.Pool
	var businesses ports.BusinessRepository
	var users ports.UserRepository
	if cfg.Database.URL != "" {
		pool, err = pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("ping database")
		}
		businesses = postgres.NewBusinessRepository(pool)
		users = postgres.NewUserRepository(pool)
	} else {
		log.Warn().Msg("DATABASE_URL not set; using in-memory store (data is lost on restart)")
		businesses = memory.NewBusinessRepository()
		users = memory.NewUserRepository()
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	var emitter ports.EventEmitter
	if cfg.Webhook.URL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, webhook.WithClient(&http.Client{
			Timeout: time.Duration(cfg.Webhook.TimeoutSeconds) * time.Second,
		}))
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	var events ports.TaskEnqueuer
	var worker *queue.Worker
	if redisClient != nil {
		asynqOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		enq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer enq.Close()
		events = enq
		worker = queue.NewWorker(asynqOpt, emitter, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		events = queue.NewNoopEnqueuer()
	}

	businessHandler := handlers.NewBusinessHandler(
		appbusiness.NewCreateBusiness(businesses, events, log),
		appbusiness.NewGetBusiness(businesses, log),
		appbusiness.NewUpdateBusiness(businesses, events, log),
		appbusiness.NewDeleteBusiness(businesses, events, log),
		appbusiness.NewListBusinesses(businesses, log),
		log,
	)
	usersHandler := handlers.NewUsersHandler(
		appuser.NewCreateUser(users, events, log),
		appuser.NewGetUser(users, log),
		appuser.NewUpdateUser(users, events, log),
		appuser.NewListUsers(users, log),
		log,
	)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.Rate)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	corsMiddleware := middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		BusinessHandler: businessHandler,
		UsersHandler:    usersHandler,
		HealthHandler:   healthHandler,
		RequireAdmin:    middleware.RequireAdminSecret(cfg.Admin.Secret),
		Log:             log,
		Secure:          secureMiddleware,
		CORS:            corsMiddleware,
		IPRateLimit:     ipLimit,
		APIVersion:      "v1",
		Metrics:         true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
