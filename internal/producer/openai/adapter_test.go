package openai_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/producer/openai"
)

func chunkJSON(content, finishReason string) string {
	finish := "null"
	if finishReason != "" {
		finish = fmt.Sprintf("%q", finishReason)
	}
	return fmt.Sprintf(
		`{"id":"chatcmpl-1","object":"chat.completion.chunk","created":1700000000,"model":"gpt-4",`+
			`"choices":[{"index":0,"delta":{"role":"assistant","content":%q},"finish_reason":%s}]}`,
		content, finish)
}

func newStreamingServer(t *testing.T, records []string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		for _, record := range records {
			fmt.Fprintf(w, "data: %s\n\n", record)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(srv.Close)

	return srv
}

func userRequest(content string) *domain.CompletionRequest {
	return &domain.CompletionRequest{
		Model: "gpt-4",
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: content},
		},
	}
}

func TestNewProducer_Success(t *testing.T) {
	config := openai.Config{
		APIKey:     "test-api-key",
		BaseURL:    "https://api.openai.com/v1",
		Timeout:    60,
		MaxRetries: 3,
	}

	producer, err := openai.NewProducer(config)

	require.NoError(t, err)
	require.NotNil(t, producer)
	require.Equal(t, "openai", producer.Name())
}

func TestNewProducer_MissingAPIKey(t *testing.T) {
	config := openai.Config{
		APIKey:     "",
		BaseURL:    "https://api.openai.com/v1",
		Timeout:    60,
		MaxRetries: 3,
	}

	producer, err := openai.NewProducer(config)

	require.Error(t, err)
	require.Nil(t, producer)
	require.Contains(t, err.Error(), "OpenAI API key is required")
}

func TestProducer_IsModelSupported(t *testing.T) {
	producer, err := openai.NewProducer(openai.Config{APIKey: "test-key"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		model     string
		supported bool
	}{
		{
			name:      "GPT-4 is supported",
			model:     "gpt-4",
			supported: true,
		},
		{
			name:      "GPT-4 Turbo is supported",
			model:     "gpt-4-turbo",
			supported: true,
		},
		{
			name:      "GPT-3.5 Turbo is supported",
			model:     "gpt-3.5-turbo",
			supported: true,
		},
		{
			name:      "Claude is not supported",
			model:     "claude-3-opus",
			supported: false,
		},
		{
			name:      "Unknown model is not supported",
			model:     "unknown-model",
			supported: false,
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.supported, producer.IsModelSupported(ctx, tt.model))
		})
	}
}

func TestProducer_Produce_NilRequest(t *testing.T) {
	producer, err := openai.NewProducer(openai.Config{APIKey: "test-key"})
	require.NoError(t, err)

	fragments, err := producer.Produce(context.Background(), nil)

	require.Error(t, err)
	require.Nil(t, fragments)
	require.Contains(t, err.Error(), "request cannot be nil")
}

func TestProducer_Produce_StreamsDeltas(t *testing.T) {
	srv := newStreamingServer(t, []string{
		chunkJSON("", ""),
		chunkJSON("Hello ", ""),
		chunkJSON("there", ""),
		chunkJSON("", "stop"),
	})

	producer, err := openai.NewProducer(openai.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1/"})
	require.NoError(t, err)

	fragments, err := producer.Produce(context.Background(), userRequest("hi"))
	require.NoError(t, err)

	var got []domain.Fragment
	for fragment := range fragments {
		require.NoError(t, fragment.Err)
		got = append(got, fragment)
	}

	require.Len(t, got, 2)
	require.Equal(t, 0, got[0].Index)
	require.Equal(t, "Hello ", got[0].Content)
	require.Equal(t, 1, got[1].Index)
	require.Equal(t, "there", got[1].Content)
}

func TestProducer_Produce_UpstreamRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	producer, err := openai.NewProducer(openai.Config{APIKey: "bad-key", BaseURL: srv.URL + "/v1/"})
	require.NoError(t, err)

	fragments, err := producer.Produce(context.Background(), userRequest("hi"))

	require.Error(t, err)
	require.Nil(t, fragments)
	require.Contains(t, err.Error(), "OpenAI stream failed")
}
