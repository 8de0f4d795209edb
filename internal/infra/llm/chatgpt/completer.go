package chatgpt

import (
	"context"
	"errors"
	"strings"

	"github.com/yanqian/ethix-logistics/internal/domain/advisor"
)

// Completer adapts the ChatGPT client to the advisor domain.
type Completer struct {
	client      *Client
	model       string
	temperature float32
}

// NewCompleter constructs the adapter.
func NewCompleter(client *Client, model string, temperature float32) *Completer {
	return &Completer{client: client, model: model, temperature: temperature}
}

// Complete asks for a JSON object reply.
func (c *Completer) Complete(ctx context.Context, prompt advisor.Prompt) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []Message{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chatgpt returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ advisor.Completer = (*Completer)(nil)
