package metrics

import (
	"strconv"
	"time"
)

type RedisOperation string

const (
	RedisOpGet RedisOperation = "get"
	RedisOpSet RedisOperation = "set"
	RedisOpDel RedisOperation = "del"
)

type RedisTimer struct {
	service   string
	operation RedisOperation
	start     time.Time
}

func NewRedisTimer(service string, op RedisOperation) *RedisTimer {
	return &RedisTimer{
		service:   service,
		operation: op,
		start:     time.Now(),
	}
}

func (rt *RedisTimer) ObserveDuration() {
	RedisOperationDuration.WithLabelValues(rt.service, string(rt.operation)).Observe(time.Since(rt.start).Seconds())
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

type DbOperation string

const (
	DbOpSelect DbOperation = "select"
	DbOpUpsert DbOperation = "upsert"
	DbOpDelete DbOperation = "delete"
)

type DbTimer struct {
	service   string
	operation DbOperation
	table     string
	start     time.Time
}

func NewDbTimer(service string, op DbOperation, table string) *DbTimer {
	return &DbTimer{
		service:   service,
		operation: op,
		table:     table,
		start:     time.Now(),
	}
}

func (dt *DbTimer) ObserveDuration() {
	DbQueryDuration.WithLabelValues(dt.service, string(dt.operation), dt.table).Observe(time.Since(dt.start).Seconds())
}

func RecordDbError(service string, op DbOperation) {
	DbErrors.WithLabelValues(service, string(op)).Inc()
}

// RemoteTimer замеряет один запрос к удаленному API
type RemoteTimer struct {
	resource string
	method   string
	start    time.Time
}

func NewRemoteTimer(resource, method string) *RemoteTimer {
	return &RemoteTimer{
		resource: resource,
		method:   method,
		start:    time.Now(),
	}
}

// Observe фиксирует статус ответа; statusCode == 0 означает сетевую ошибку
func (rt *RemoteTimer) Observe(statusCode int) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	RemoteRequestsTotal.WithLabelValues(rt.resource, rt.method, status).Inc()
	RemoteRequestDuration.WithLabelValues(rt.resource, rt.method).Observe(time.Since(rt.start).Seconds())
}

func RecordLikeOutcome(outcome string) {
	LikeTogglesTotal.WithLabelValues(outcome).Inc()
}

func RecordAssemblyFailure(dependency string) {
	AssemblyFailures.WithLabelValues(dependency).Inc()
}

func RecordStateTransition(transition string, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	StateTransitionsTotal.WithLabelValues(transition, status).Inc()
}

func RecordKafkaMessageProduced(service, topic string, duration time.Duration) {
	KafkaMessagesProduced.WithLabelValues(service, topic).Inc()
	KafkaProduceDuration.WithLabelValues(service, topic).Observe(duration.Seconds())
}

func RecordKafkaError(service, topic, operation string) {
	KafkaErrors.WithLabelValues(service, topic, operation).Inc()
}
