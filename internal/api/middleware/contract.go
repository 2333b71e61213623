package middleware

import "context"

// HTTPMetrics метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, path, status string, seconds float64)
}

// RateLimitMetrics метрики отклоненных запросов
type RateLimitMetrics interface {
	IncRateLimited(path string)
}

// RateLimiter ограничитель частоты запросов по ключу клиента
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
