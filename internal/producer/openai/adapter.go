// Package openai provides a producer backed by the OpenAI chat completions
// streaming API using the official SDK. Each non-empty content delta becomes
// one fragment.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"

	"github.com/davidbz/howl/internal/domain"
	"github.com/davidbz/howl/internal/observability"
)

// Producer implements the domain.Producer interface for OpenAI.
type Producer struct {
	client          openai.Client
	name            string
	supportedModels map[string]bool
}

// NewProducer creates a new OpenAI producer.
func NewProducer(config Config) (*Producer, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	return &Producer{
		client:          openai.NewClient(opts...),
		name:            "openai",
		supportedModels: buildModelSet(SupportedModels()),
	}, nil
}

// Produce opens a streaming completion. The first chunk is read before
// returning so that connection and authentication failures surface as an
// error instead of a failed fragment.
func (p *Producer) Produce(ctx context.Context, req *domain.CompletionRequest) (<-chan domain.Fragment, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI streaming API")

	stream := p.client.Chat.Completions.NewStreaming(ctx, p.toSDKParams(req))

	first := stream.Next()
	if !first {
		err := stream.Err()
		_ = stream.Close()
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Error("OpenAI stream failed to open", observability.Error(err))
			return nil, fmt.Errorf("OpenAI stream failed: %w", err)
		}
	}

	fragments := make(chan domain.Fragment)

	go func() {
		defer close(fragments)
		defer stream.Close()
		defer logger.Debug("OpenAI stream completed")

		if !first {
			return
		}

		index := 0
		for ok := true; ok; ok = stream.Next() {
			delta, done := extractDelta(stream)
			if delta != "" {
				select {
				case <-ctx.Done():
					return
				case fragments <- domain.Fragment{Index: index, Content: delta, Err: nil}:
				}
				index++
			}
			if done {
				return
			}
		}

		if err := stream.Err(); err != nil && !errors.Is(err, io.EOF) {
			select {
			case <-ctx.Done():
			case fragments <- domain.Fragment{Index: index, Content: "", Err: fmt.Errorf("OpenAI stream error: %w", err)}:
			}
		}
	}()

	return fragments, nil
}

// Name returns the producer identifier.
func (p *Producer) Name() string {
	return p.name
}

// IsModelSupported checks if the producer supports the given model.
func (p *Producer) IsModelSupported(_ context.Context, model string) bool {
	return p.supportedModels[model]
}

// extractDelta returns the content delta of the current chunk and whether the
// choice has finished.
func extractDelta(stream *ssestream.Stream[openai.ChatCompletionChunk]) (string, bool) {
	chunk := stream.Current()
	if len(chunk.Choices) == 0 {
		return "", false
	}
	choice := chunk.Choices[0]
	return choice.Delta.Content, choice.FinishReason != ""
}

// toSDKParams converts domain request to SDK ChatCompletionNewParams
func (p *Producer) toSDKParams(req *domain.CompletionRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, len(req.Messages))
	for i, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleUser:
			messages[i] = openai.UserMessage(msg.Content)
		case domain.RoleAssistant:
			messages[i] = openai.AssistantMessage(msg.Content)
		case domain.RoleSystem:
			messages[i] = openai.SystemMessage(msg.Content)
		default:
			// Fallback to user message if role is unknown
			messages[i] = openai.UserMessage(msg.Content)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	}

	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	if req.MaxTokens != nil && *req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(*req.MaxTokens))
	}

	return params
}
