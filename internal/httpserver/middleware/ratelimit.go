package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/davidbz/howl/internal/config"
	"github.com/davidbz/howl/internal/observability"
)

const (
	maxTrackedClients = 10000
	clientIdleTimeout = 10 * time.Minute
)

// RateLimit enforces a per-client token bucket. Paths in skipPaths are never
// limited. A nil config or non-positive RPS disables limiting.
func RateLimit(cfg *config.RateLimitConfig, skipPaths ...string) Middleware {
	if cfg == nil || cfg.RPS <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limiter := newClientLimiter(rate.Limit(cfg.RPS), cfg.Burst, maxTrackedClients)
	resolver := newClientResolver(context.Background(), cfg.TrustedProxies)

	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			ip := resolver.clientIP(r)
			if !limiter.allow(ip) {
				observability.FromContext(r.Context()).Warn("rate limit exceeded",
					observability.String("client_ip", ip))
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"detail":"rate limit exceeded"}` + "\n"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientLimiter tracks per-client token-bucket limiters, holding at most
// capacity clients.
type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	capacity int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiter(limit rate.Limit, burst, capacity int) *clientLimiter {
	if burst <= 0 {
		burst = 1
	}
	if capacity <= 0 {
		capacity = 1
	}

	return &clientLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    limit,
		burst:    burst,
		capacity: capacity,
	}
}

func (l *clientLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		if len(l.limiters) >= l.capacity {
			l.evictIdle()
		}
		if len(l.limiters) >= l.capacity {
			l.evictOldest()
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter.Allow()
}

// evictIdle drops clients not seen recently. Must be called with l.mu held.
func (l *clientLimiter) evictIdle() {
	cutoff := time.Now().Add(-clientIdleTimeout)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

// evictOldest drops the least recently seen client. Must be called with l.mu held.
func (l *clientLimiter) evictOldest() {
	var (
		oldestIP   string
		oldestSeen time.Time
	)
	for ip, entry := range l.limiters {
		if oldestIP == "" || entry.lastSeen.Before(oldestSeen) {
			oldestIP, oldestSeen = ip, entry.lastSeen
		}
	}
	delete(l.limiters, oldestIP)
}

// clientResolver derives the client address of a request. X-Forwarded-For is
// only read when the peer is a trusted proxy.
type clientResolver struct {
	trusted []netip.Prefix
}

func newClientResolver(ctx context.Context, proxies []string) clientResolver {
	resolver := clientResolver{trusted: make([]netip.Prefix, 0, len(proxies))}

	for _, raw := range proxies {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				observability.FromContext(ctx).Warn("ignoring invalid trusted proxy",
					observability.String("proxy", entry), observability.Error(err))
				continue
			}
			resolver.trusted = append(resolver.trusted, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(entry)
		if err != nil {
			observability.FromContext(ctx).Warn("ignoring invalid trusted proxy",
				observability.String("proxy", entry), observability.Error(err))
			continue
		}
		addr = addr.Unmap()
		resolver.trusted = append(resolver.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}

	return resolver
}

func (c clientResolver) trusts(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, prefix := range c.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP returns the peer address, or for a trusted peer the nearest
// untrusted hop of X-Forwarded-For.
func (c clientResolver) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	peer, err := netip.ParseAddr(host)
	if err != nil || !c.trusts(peer) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}

		addr, err := netip.ParseAddr(hop)
		if err != nil {
			return host
		}
		if !c.trusts(addr) {
			return addr.Unmap().String()
		}
	}

	return host
}
