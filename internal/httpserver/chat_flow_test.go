package httpserver //nolint:testpackage // Shares the package's test helpers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/howl/internal/catalog"
	"github.com/davidbz/howl/internal/document"
	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/producer/canned"
	"github.com/davidbz/howl/internal/producer/registry"
	"github.com/davidbz/howl/internal/routing"
	"github.com/davidbz/howl/internal/sse"
)

// newCannedHandler wires the real demo stack: default table, canned
// producer, registry and fallback router.
func newCannedHandler(t *testing.T) (*Handler, *canned.Table) {
	t.Helper()

	table, err := canned.DefaultTable()
	require.NoError(t, err)

	producer, err := canned.NewProducer(table)
	require.NoError(t, err)

	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(context.Background(), producer))

	chat := domain.NewChatService(
		reg,
		routing.NewRouter(reg, "canned"),
		&domain.DeliveryConfig{DefaultModel: "gpt-4", DefaultProducer: "canned"},
		nil,
		nil,
	)
	docs := document.NewService(document.NewMemoryStore(), nil)

	return NewHandler(chat, reg, catalog.NewCatalog(), docs), table
}

func conversationBody(t *testing.T, stream bool, messages ...domain.Message) string {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"messages": messages,
		"stream":   stream,
	})
	require.NoError(t, err)
	return string(body)
}

func TestHandleChat_CannedReplies(t *testing.T) {
	handler, table := newCannedHandler(t)

	tests := []struct {
		name         string
		messages     []domain.Message
		route        string
		promptTokens int
		contains     string
	}{
		{
			name:         "python request gets the code reply",
			messages:     []domain.Message{{Role: domain.RoleUser, Content: "please write python code"}},
			route:        "code",
			promptTokens: 4,
			contains:     "class WebScraper:",
		},
		{
			name:         "analytics request gets the report",
			messages:     []domain.Message{{Role: domain.RoleUser, Content: "売上データを分析してください"}},
			route:        "analytics",
			promptTokens: 1,
			contains:     "データ分析レポート",
		},
		{
			name: "only the last message selects the reply",
			messages: []domain.Message{
				{Role: domain.RoleSystem, Content: "you write python"},
				{Role: domain.RoleUser, Content: "hello there"},
			},
			route:        "greeting",
			promptTokens: 5,
			contains:     "AI Research Assistant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := tt.messages[len(tt.messages)-1].Content
			route := table.Select(last)
			require.Equal(t, tt.route, route.Name)

			// Aggregated.
			w := httptest.NewRecorder()
			handler.HandleChat(w, chatRequest(t, conversationBody(t, false, tt.messages...)))
			require.Equal(t, http.StatusOK, w.Code)

			var result domain.CompletionResult
			require.NoError(t, json.NewDecoder(w.Body).Decode(&result))

			require.Equal(t, strings.Join(strings.Fields(route.Response), " "), result.Content)
			require.Contains(t, result.Content, tt.contains)
			require.NotContains(t, result.Content, "  ")
			require.Equal(t, "gpt-4", result.Model)
			require.Regexp(t, `^chat_[0-9a-f]{8}$`, result.ID)

			completion := len(strings.Fields(result.Content))
			require.Equal(t, domain.Usage{
				PromptTokens:     tt.promptTokens,
				CompletionTokens: completion,
				TotalTokens:      tt.promptTokens + completion,
			}, result.Usage)

			// Streamed.
			w = httptest.NewRecorder()
			handler.HandleChat(w, chatRequest(t, conversationBody(t, true, tt.messages...)))
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

			raw := w.Body.String()
			require.Equal(t, 1, strings.Count(raw, "data: [DONE]"))
			require.True(t, strings.HasSuffix(raw, "data: [DONE]\n\n"))

			chunks, err := sse.ReadAll(strings.NewReader(raw))
			require.NoError(t, err)
			require.Len(t, chunks, completion)
			require.Equal(t, result.Content, strings.Join(chunks, ""))

			// Repeated.
			w = httptest.NewRecorder()
			handler.HandleChat(w, chatRequest(t, conversationBody(t, false, tt.messages...)))
			require.Equal(t, http.StatusOK, w.Code)

			var again domain.CompletionResult
			require.NoError(t, json.NewDecoder(w.Body).Decode(&again))
			require.Equal(t, result, again)
		})
	}
}

func TestHandleChat_CannedRejectsEmptyConversation(t *testing.T) {
	handler, _ := newCannedHandler(t)

	for _, stream := range []bool{true, false} {
		w := httptest.NewRecorder()
		handler.HandleChat(w, chatRequest(t, conversationBody(t, stream)))

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))
		require.Contains(t, decodeDetail(t, w.Body), "messages cannot be empty")
	}
}
