package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, повторите позже"

// RedisRateLimiter фиксированное окно в Redis, общее для всех экземпляров сервиса
type RedisRateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// NewRedisRateLimiter создает ограничитель: не больше limit запросов за window на ключ
func NewRedisRateLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string) *RedisRateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisRateLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Allow увеличивает счетчик окна для ключа
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Result()
	if err != nil {
		return false, fmt.Errorf("rate limiter: redis: %w", err)
	}

	var count int64
	switch v := res.(type) {
	case int64:
		count = v
	case string:
		count, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false, fmt.Errorf("rate limiter: unexpected result %q: %w", v, err)
		}
	default:
		return false, fmt.Errorf("rate limiter: unexpected result type %T", res)
	}

	return count <= int64(l.limit), nil
}

// LocalRateLimiter token bucket в памяти процесса, используется без Redis
type LocalRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*localEntry
	every     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalRateLimiter создает ограничитель: в среднем limit запросов за window, всплеск до limit
func NewLocalRateLimiter(limit int, window time.Duration) *LocalRateLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LocalRateLimiter{
		limiters: make(map[string]*localEntry),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		idleTTL:  window,
		now:      time.Now,
	}
}

// Allow никогда не возвращает ошибку
func (l *LocalRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.limiters[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1), nil
}

// sweep удаляет ключи, простаивавшие дольше окна: их корзина уже полная,
// и новый ограничитель ведет себя так же
func (l *LocalRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idleTTL {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func (l *LocalRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// ClientKeyResolver определяет IP клиента. X-Forwarded-For учитывается,
// только если запрос пришел от доверенного прокси
type ClientKeyResolver struct {
	trusted []netip.Prefix
}

// NewClientKeyResolver принимает IP или CIDR доверенных прокси
func NewClientKeyResolver(trustedProxies []string) (*ClientKeyResolver, error) {
	res := &ClientKeyResolver{}
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("rate limiter: invalid trusted proxy %q: %w", raw, err)
			}
			res.trusted = append(res.trusted, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("rate limiter: invalid trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		res.trusted = append(res.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return res, nil
}

// Key возвращает ключ ограничения для запроса
func (c *ClientKeyResolver) Key(r *http.Request) string {
	remote := remoteHost(r)
	if c == nil {
		return remote
	}

	addr, err := netip.ParseAddr(remote)
	if err != nil || !c.isTrusted(addr) {
		return remote
	}

	// Идем справа налево: первый адрес не из доверенных прокси и есть клиент
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		if !c.isTrusted(hop) {
			return hop.Unmap().String()
		}
	}
	return remote
}

func (c *ClientKeyResolver) isTrusted(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, prefix := range c.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// RateLimit ограничивает частоту запросов по IP клиента.
// При ошибке ограничителя запрос пропускается
func RateLimit(limiter RateLimiter, keys *ClientKeyResolver, metrics RateLimitMetrics, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keys.Key(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("%s %s - Rate limiter unavailable, request allowed: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				path := routeTemplate(r)
				logger.Warn("%s %s - Rate limit exceeded: client=%s", r.Method, path, key)
				metrics.IncRateLimited(path)
				handlers.RespondErrorCode(w, http.StatusTooManyRequests, handlers.CodeTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
