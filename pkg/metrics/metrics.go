package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики BFF
// =============================================================================

// HttpRequestsTotal - счётчик всех входящих HTTP запросов
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Remote API Метрики (Book/Review/User/Tag)
// =============================================================================

// RemoteRequestsTotal - исходящие запросы к удаленному API
// Labels: resource (books, reviews, users, tags), method, status (код или "error")
var RemoteRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "remote_api_requests_total",
		Help: "Total number of requests sent to the remote resource API",
	},
	[]string{"resource", "method", "status"},
)

// RemoteRequestDuration - время ответа удаленного API
var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "remote_api_request_duration_seconds",
		Help:    "Duration of remote resource API requests in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"resource", "method"},
)

// =============================================================================
// Business Метрики
// =============================================================================

// LikeTogglesTotal - исходы операций лайка
// outcome: liked, unliked, noop, unauthenticated, review_failed, partial_failure, refetch_failed, not_found
var LikeTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "review_like_toggles_total",
		Help: "Total number of like/unlike operations by outcome",
	},
	[]string{"outcome"},
)

// LikeResyncsTotal - принудительные перечитывания перед переключением
var LikeResyncsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "review_like_resyncs_total",
		Help: "Total number of forced re-fetches before a like toggle",
	},
)

// AssemblyDuration - время сборки модели страницы отзыва
var AssemblyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "review_assembly_duration_seconds",
		Help:    "Duration of review view-model assembly",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	},
)

// AssemblyFailures - неудачные сборки по зависимости (review, author, tag, liker, viewer)
var AssemblyFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "review_assembly_failures_total",
		Help: "Total number of failed review assemblies by dependency",
	},
	[]string{"dependency"},
)

// LikersFiltered - лайкнувшие, которых не удалось найти (удаленные аккаунты)
var LikersFiltered = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "review_assembly_likers_filtered_total",
		Help: "Total number of liker ids dropped because they no longer resolve",
	},
)

// StateTransitionsTotal - переходы хранилища состояния
var StateTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "client_state_transitions_total",
		Help: "Total number of client state store transitions",
	},
	[]string{"transition", "status"}, // status: success, failed
)

// ReconcileRunsTotal - запуски фоновой сверки
var ReconcileRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "client_state_reconcile_runs_total",
		Help: "Total number of reconcile runs",
	},
	[]string{"status"},
)

// =============================================================================
// Storage Метрики
// =============================================================================

// RedisOperationDuration - время операций Redis
var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// DbQueryDuration - время выполнения SQL запросов
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)
