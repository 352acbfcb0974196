package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const msgTooManyRequests = "too many requests, please try again later"

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter ограничивает число запросов с одного адреса за окно (fixed window в Redis).
// Общий счетчик работает для нескольких экземпляров сервиса.
type RateLimiter struct {
	rdb     redis.UniversalClient
	limit   int
	window  time.Duration
	prefix  string
	trusted []*net.IPNet
	logger  Logger
}

// NewRateLimiter создает ограничитель; limit <= 0 заменяется на 20, window <= 0 на минуту
func NewRateLimiter(rdb redis.UniversalClient, limit int, window time.Duration, prefix string, logger Logger) *RateLimiter {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "salon:rl"
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix, logger: logger}
}

// TrustProxies задает подсети прокси, от которых принимается X-Forwarded-For.
// Без них ключом всегда служит адрес соединения.
func (rl *RateLimiter) TrustProxies(cidrs []string) error {
	trusted := make([]*net.IPNet, 0, len(cidrs))
	for _, raw := range cidrs {
		network, err := ParseProxyCIDR(raw)
		if err != nil {
			return err
		}
		trusted = append(trusted, network)
	}
	rl.trusted = trusted
	return nil
}

// ParseProxyCIDR разбирает подсеть прокси; одиночный адрес трактуется как /32 или /128
func ParseProxyCIDR(raw string) (*net.IPNet, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "/") {
		ip := net.ParseIP(raw)
		if ip == nil {
			return nil, fmt.Errorf("middleware: invalid proxy address %q", raw)
		}
		bits := 8 * net.IPv6len
		if ip.To4() != nil {
			ip = ip.To4()
			bits = 8 * net.IPv4len
		}
		return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
	}
	_, network, err := net.ParseCIDR(raw)
	if err != nil {
		return nil, fmt.Errorf("middleware: invalid proxy cidr %q: %w", raw, err)
	}
	return network, nil
}

// Middleware отклоняет запросы сверх лимита с 429.
// Недоступность Redis не блокирует запись клиентов.
func (rl *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rl.prefix + ":" + rl.clientIP(r)

			count, err := rl.incr(r.Context(), key)
			if err != nil {
				rl.logger.Warn("RateLimit: redis error, allowing request: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(rl.limit) {
				rl.logger.Warn("RateLimit: limit exceeded for %s (%d/%d)", key, count, rl.limit)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	return fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Int64()
}

// clientIP адрес клиента. X-Forwarded-For учитывается, только если соединение
// пришло от доверенного прокси; цепочка читается справа до первого недоверенного адреса.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	remote := remoteHost(r)
	if !rl.isTrusted(remote) {
		return remote
	}

	fwd := r.Header.Get("X-Forwarded-For")
	if fwd == "" {
		return remote
	}

	hops := strings.Split(fwd, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if net.ParseIP(hop) == nil {
			break
		}
		if !rl.isTrusted(hop) {
			return hop
		}
		remote = hop
	}
	return remote
}

func (rl *RateLimiter) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, network := range rl.trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
