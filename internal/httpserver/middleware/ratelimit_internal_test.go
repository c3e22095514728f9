package middleware //nolint:testpackage // Tests exercise the unexported limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestClientLimiter_BoundedWhenAllClientsActive(t *testing.T) {
	limiter := newClientLimiter(rate.Limit(1), 1, 2)

	require.True(t, limiter.allow("a"))
	require.True(t, limiter.allow("b"))
	limiter.limiters["a"].lastSeen = time.Now().Add(-time.Minute)

	require.True(t, limiter.allow("c"))

	require.Len(t, limiter.limiters, 2)
	require.NotContains(t, limiter.limiters, "a")
	require.Contains(t, limiter.limiters, "b")
	require.Contains(t, limiter.limiters, "c")
}

func TestClientLimiter_EvictsIdleFirst(t *testing.T) {
	limiter := newClientLimiter(rate.Limit(1), 1, 2)

	require.True(t, limiter.allow("a"))
	require.True(t, limiter.allow("b"))
	limiter.limiters["a"].lastSeen = time.Now().Add(-2 * clientIdleTimeout)
	limiter.limiters["b"].lastSeen = time.Now().Add(-2 * clientIdleTimeout)

	require.True(t, limiter.allow("c"))

	require.Len(t, limiter.limiters, 1)
	require.Contains(t, limiter.limiters, "c")
}

func TestClientResolver_ClientIP(t *testing.T) {
	resolver := newClientResolver(context.Background(), []string{"10.0.0.0/8", "::1"})

	tests := []struct {
		name      string
		remote    string
		forwarded string
		expected  string
	}{
		{name: "untrusted peer ignores header", remote: "203.0.113.5:80", forwarded: "198.51.100.1", expected: "203.0.113.5"},
		{name: "trusted peer without header", remote: "10.0.0.1:80", expected: "10.0.0.1"},
		{name: "trusted peer uses nearest untrusted hop", remote: "10.0.0.1:80", forwarded: "192.0.2.1, 198.51.100.1, 10.0.0.2", expected: "198.51.100.1"},
		{name: "all hops trusted", remote: "10.0.0.1:80", forwarded: "10.0.0.3", expected: "10.0.0.1"},
		{name: "malformed hop falls back to peer", remote: "10.0.0.1:80", forwarded: "junk", expected: "10.0.0.1"},
		{name: "ipv6 loopback proxy", remote: "[::1]:80", forwarded: "2001:db8::1", expected: "2001:db8::1"},
		{name: "remote without port", remote: "203.0.113.5", expected: "203.0.113.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			require.Equal(t, tt.expected, resolver.clientIP(req))
		})
	}
}
