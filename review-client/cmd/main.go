package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookreviews/pkg/logger"
	"bookreviews/review-client/internal/app/reviewclient/config"
	"bookreviews/review-client/internal/app/reviewclient/handler"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"
	apiclient "bookreviews/review-client/internal/app/reviewclient/infrastructure/http"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure/messaging"
	"bookreviews/review-client/internal/app/reviewclient/processor"
	"bookreviews/review-client/internal/app/reviewclient/repository"
	"bookreviews/review-client/internal/app/reviewclient/service"
	"bookreviews/review-client/internal/app/reviewclient/state"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const serviceName = "review-client"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// === ЛОГИРОВАНИЕ ===
	logger.Init(serviceName, cfg.Logging.Level)
	if cfg.Logging.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Logging.LogstashAddr, serviceName, cfg.Logging.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Logging.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === ТРАССИРОВКА ===
	if cfg.Tracing.OTLPEndpoint != "" {
		shutdownTracing, err := initTracing(ctx, cfg.Tracing.OTLPEndpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to init OTLP exporter, tracing disabled")
		} else {
			defer func() {
				c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdownTracing(c)
			}()
			logger.Info().Str("endpoint", cfg.Tracing.OTLPEndpoint).Msg("OTLP tracing enabled")
		}
	}

	// === ХРАНИЛИЩЕ СОСТОЯНИЯ КЛИЕНТА ===
	storage, closeStorage, err := openStateStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.State.Backend).Msg("Failed to open state storage")
	}
	defer closeStorage()

	store := state.NewStore(storage)
	if err := store.Rehydrate(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to rehydrate client state, starting from defaults")
	}

	// === KAFKA PRODUCER ===
	var publisher infrastructure.MessagePublisher = messaging.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka producer initialized")
	}
	defer publisher.Close()

	// === КЛИЕНТЫ УДАЛЕННОГО API ===
	api := apiclient.NewAPIClient(cfg.API.BaseURL, cfg.API.Timeout)
	bookClient := apiclient.NewBookClient(api)
	reviewClient := apiclient.NewReviewClient(api)
	userClient := apiclient.NewUserClient(api)
	tagClient := apiclient.NewTagClient(api)

	// === БИЗНЕС-ЛОГИКА ===
	coordinator := service.NewLikeCoordinator(reviewClient, userClient, publisher)
	assembler := service.NewReviewAssembler(reviewClient, userClient, tagClient)
	pageService := service.NewReviewPageService(assembler, coordinator, userClient, store)
	bookService := service.NewBookService(bookClient, reviewClient, tagClient, store)
	sessionService := service.NewSessionService(userClient, store)

	// === СВЕРКА СОСТОЯНИЯ ===
	scheduler := processor.NewReconcileScheduler(sessionService, bookService)
	if err := scheduler.Start(ctx, cfg.Reconcile.Schedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.Reconcile.Schedule).Msg("Failed to start reconcile scheduler")
	}
	defer scheduler.Stop()

	// === HTTP ===
	router := handler.SetupRoutes(
		handler.NewReviewHandler(pageService),
		handler.NewBookHandler(bookService),
		handler.NewSessionHandler(sessionService),
		handler.NewViewerMiddleware(cfg.JWT.Secret),
		cfg.CORS.AllowOrigins,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      otelhttp.NewHandler(router, "http.server"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Review Client")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	<-ctx.Done()
	logger.Info().Msg("Shutting down Review Client...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Review Client stopped gracefully")
}

// openStateStorage выбирает бэкенд долговременного хранения состояния
func openStateStorage(ctx context.Context, cfg *config.Config) (repository.StateStorage, func(), error) {
	switch cfg.State.Backend {
	case config.StateBackendRedis:
		client, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("addr", cfg.Redis.Address()).Msg("Successfully connected to Redis")
		return repository.NewRedisStateStorage(client), func() { _ = client.Close() }, nil

	case config.StateBackendPostgres:
		db, err := connectDB(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.MigrateStateStorage(db); err != nil {
			return nil, nil, err
		}
		logger.Info().Str("host", cfg.Database.Host).Msg("Successfully connected to PostgreSQL")
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return repository.NewPostgresStateStorage(db), closeDB, nil

	default:
		logger.Warn().Msg("Using in-memory state storage, client state is lost on restart")
		return repository.NewMemoryStateStorage(), func() {}, nil
	}
}

// connectDB устанавливает соединение с PostgreSQL используя GORM
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	// Retry logic для устойчивости при запуске в Docker
	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(5)
				sqlDB.SetMaxIdleConns(2)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				return db, nil
			}
		}
		logger.Warn().Err(err).Int("attempt", i+1).Msg("Failed to connect to database")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

// connectRedis устанавливает соединение с Redis
func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// initTracing настраивает экспорт трейсов по OTLP HTTP
func initTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	return tp.Shutdown, nil
}
