package canned_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/producer/canned"
)

func newProducer(t *testing.T) *canned.Producer {
	t.Helper()

	table, err := canned.DefaultTable()
	require.NoError(t, err)

	producer, err := canned.NewProducer(table)
	require.NoError(t, err)
	return producer
}

func TestNewProducer(t *testing.T) {
	producer, err := canned.NewProducer(nil)
	require.Error(t, err)
	require.Nil(t, producer)

	require.Equal(t, "canned", newProducer(t).Name())
}

func TestProducer_Produce(t *testing.T) {
	producer := newProducer(t)
	ctx := context.Background()

	t.Run("should stream the selected route in order", func(t *testing.T) {
		req := &domain.CompletionRequest{
			Model: "gpt-4",
			Messages: []domain.Message{
				{Role: domain.RoleUser, Content: "データ"},
				{Role: domain.RoleAssistant, Content: "..."},
				{Role: domain.RoleUser, Content: "hello"},
			},
		}

		fragments, err := producer.Produce(ctx, req)
		require.NoError(t, err)

		var parts []string
		for i := 0; ; i++ {
			fragment, ok := <-fragments
			if !ok {
				break
			}
			require.NoError(t, fragment.Err)
			require.Equal(t, i, fragment.Index)
			parts = append(parts, fragment.Content)
		}

		require.True(t, strings.HasPrefix(strings.Join(parts, ""), "こんにちは！AI Research Assistant です。"))
	})

	t.Run("should reject nil request", func(t *testing.T) {
		fragments, err := producer.Produce(ctx, nil)
		require.Error(t, err)
		require.Nil(t, fragments)
	})

	t.Run("should reject empty conversation", func(t *testing.T) {
		fragments, err := producer.Produce(ctx, &domain.CompletionRequest{Model: "gpt-4"})
		require.Error(t, err)
		require.Nil(t, fragments)
	})

	t.Run("should not mutate the request", func(t *testing.T) {
		req := &domain.CompletionRequest{
			Model:    "gpt-4",
			Messages: []domain.Message{{Role: domain.RoleUser, Content: "Python"}},
		}

		fragments, err := producer.Produce(ctx, req)
		require.NoError(t, err)
		for range fragments {
		}

		require.Equal(t, "Python", req.Messages[0].Content)
		require.Equal(t, "gpt-4", req.Model)
	})
}

func TestProducer_IsModelSupported(t *testing.T) {
	producer := newProducer(t)

	require.False(t, producer.IsModelSupported(context.Background(), "gpt-4"))
}
