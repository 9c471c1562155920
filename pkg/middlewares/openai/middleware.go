package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/magmast/rzork/pkg/chat"
	"github.com/magmast/rzork/pkg/utils"
	"github.com/sashabaranov/go-openai"
)

// Middleware sends accepted messages to the chat-completions endpoint named by
// the request's configuration and returns the first choice. It ends the chain
// and never calls next.
type Middleware struct {
	// Transport carries the HTTP requests. Nil means http.DefaultTransport.
	Transport http.RoundTripper
}

func (m *Middleware) Run(ctx context.Context, req chat.Request, next chat.Handler) (*chat.Response, error) {
	ep, err := newEndpoint(req.Config.BaseURL, m.Transport, req.OnDelta != nil)
	if err != nil {
		return nil, err
	}

	config := openai.DefaultConfig(req.Config.APIKey)
	config.HTTPClient = ep.client()
	client := openai.NewClientWithConfig(config)

	creq := openai.ChatCompletionRequest{
		Model: req.Config.Model,
		Messages: utils.Map(req.Messages, func(m chat.Message) openai.ChatCompletionMessage {
			return openai.ChatCompletionMessage{
				Role:    string(m.Role),
				Content: m.Content,
			}
		}),
	}

	var content string
	if req.OnDelta != nil {
		content, err = stream(ctx, client, creq, req.OnDelta)
	} else {
		content, err = complete(ctx, client, creq)
	}
	if err := ep.check(err); err != nil {
		return nil, err
	}

	return &chat.Response{
		Request: req,
		Message: chat.Message{
			Role:    chat.RoleAssistant,
			Content: content,
		},
	}, nil
}

func complete(ctx context.Context, client *openai.Client, creq openai.ChatCompletionRequest) (string, error) {
	res, err := client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(res.Choices) == 0 {
		return "", chat.ErrMalformedResponse
	}

	return res.Choices[0].Message.Content, nil
}

func stream(ctx context.Context, client *openai.Client, creq openai.ChatCompletionRequest, onDelta func(string)) (string, error) {
	s, err := client.CreateChatCompletionStream(ctx, creq)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion stream: %w", err)
	}
	defer s.Close()

	var sb strings.Builder
	for {
		res, err := s.Recv()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to read chat completion stream: %w", err)
		}

		if len(res.Choices) == 0 {
			continue
		}

		delta := res.Choices[0].Delta.Content
		if delta == "" {
			continue
		}

		sb.WriteString(delta)
		onDelta(delta)
	}
}
