package httpserver //nolint:testpackage // Tests exercise the unexported SSE writer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/howl/internal/catalog"
	"github.com/davidbz/howl/internal/config"
	"github.com/davidbz/howl/internal/document"
	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/httpserver/middleware"
	"github.com/davidbz/howl/internal/sse"
)

func newTestServer(t *testing.T, m *chatMocks) *Server {
	t.Helper()

	chat := domain.NewChatService(m.registry, m.router, &domain.DeliveryConfig{DefaultModel: "gpt-4"}, m.publisher, nil)
	docs := document.NewService(document.NewMemoryStore(), nil)
	handler := NewHandler(chat, m.registry, catalog.NewCatalog(), docs)

	chain := middleware.BuildMiddlewareChain(&config.CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	}, &config.RateLimitConfig{})

	return NewServer(&config.ServerConfig{Port: 0}, handler, NewDocumentHandler(docs), chain)
}

func TestServer_ChatRoutes(t *testing.T) {
	for _, path := range []string{"/api/chat/", "/api/chat"} {
		t.Run(path, func(t *testing.T) {
			m := newChatMocks(t)
			m.expectRouting()
			m.expectParts("ok")
			m.publisher.EXPECT().Publish(mock.Anything, "chat.completed", mock.Anything).Return()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, path,
				strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
			newTestServer(t, m).Routes().ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.NotEmpty(t, w.Header().Get("X-Request-Id"))

			chunks, err := sse.ReadAll(w.Body)
			require.NoError(t, err)
			require.Equal(t, []string{"ok"}, chunks)
		})
	}
}

func TestServer_Routes(t *testing.T) {
	m := newChatMocks(t)
	m.registry.EXPECT().List(mock.Anything).Return([]string{"canned"}, nil).Maybe()
	routes := newTestServer(t, m).Routes()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{method: http.MethodGet, path: "/", status: http.StatusOK},
		{method: http.MethodGet, path: "/health", status: http.StatusOK},
		{method: http.MethodGet, path: "/metrics", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/chat/models", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/documents/", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/documents/doc_missing", status: http.StatusNotFound},
		{method: http.MethodGet, path: "/api/unknown", status: http.StatusNotFound},
		{method: http.MethodGet, path: "/api/chat/", status: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			routes.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			require.Equal(t, tt.status, w.Code)
		})
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	routes := newTestServer(t, newChatMocks(t)).Routes()

	req := httptest.NewRequest(http.MethodOptions, "/api/chat/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	routes.ServeHTTP(w, req)

	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	srv := newTestServer(t, newChatMocks(t))

	require.NoError(t, srv.Shutdown(context.Background()))
}
