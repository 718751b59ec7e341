package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookreviews/pkg/logger"
	"bookreviews/pkg/metrics"
	"bookreviews/review-client/internal/app/reviewclient/infrastructure"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Максимум тела ошибки, который попадает в текст ошибки
const maxErrorBody = 512

type ctxKey string

const authTokenKey ctxKey = "auth_token"

// WithAuthToken кладет bearer токен зрителя в контекст.
// Клиент общий для всех запросов, поэтому токен не хранится в нем самом.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

func authTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(authTokenKey).(string)
	return token
}

// StatusError ошибка удаленного API с исходным статусом.
// StatusCode == 0 означает, что ответ не был получен.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *StatusError) Error() string {
	msg := e.Method + " " + e.Path
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// sentinelForStatus переводит HTTP статус в ошибку транспорта
func sentinelForStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return infrastructure.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return infrastructure.ErrUnauthenticated
	case http.StatusConflict:
		return infrastructure.ErrConflict
	default:
		return infrastructure.ErrTransport
	}
}

// APIClient общий транспорт для клиентов Book/Review/User/Tag.
// Только строит запрос и декодирует ответ: без повторов и без кеша.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient создает клиент удаленного API с трассировкой otelhttp
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// do выполняет запрос и декодирует JSON ответ в out (если out != nil)
func (c *APIClient) do(ctx context.Context, resource, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(logger.RequestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := authTokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	timer := metrics.NewRemoteTimer(resource, method)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Observe(0)
		return &StatusError{
			Method: method,
			Path:   path,
			Err:    fmt.Errorf("%w: failed to send request: %w", infrastructure.ErrTransport, err),
		}
	}
	defer resp.Body.Close()

	timer.Observe(resp.StatusCode)

	logger.Debug().
		Str("resource", resource).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Msg("remote API call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
			Err:        sentinelForStatus(resp.StatusCode),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return &StatusError{
				Method:     method,
				Path:       path,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("%w: empty response body", infrastructure.ErrTransport),
			}
		}
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: failed to decode response: %w", infrastructure.ErrTransport, err),
		}
	}

	return nil
}

// escape экранирует идентификатор для подстановки в путь
func escape(id string) string {
	return url.PathEscape(id)
}
