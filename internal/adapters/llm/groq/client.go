package groq

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/phenrril/munek/internal/domain"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"

	emptyReply = "Lo siento, no pude procesar tu mensaje."
)

// Client habla con la API compatible con OpenAI de Groq.
type Client struct {
	api         *openai.Client
	Model       string
	Temperature float32
	MaxTokens   int
}

// New arma el cliente; baseURL vacío usa el endpoint público de Groq.
func New(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DefaultBaseURL
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		Model:       model,
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

func (c *Client) Complete(ctx context.Context, msgs []domain.ChatMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.Model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(msgs)),
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
	for _, m := range msgs {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: roleOf(m.Role), Content: m.Content})
	}
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("groq chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		log.Warn().Str("model", c.Model).Msg("respuesta sin choices")
		return emptyReply, nil
	}
	return resp.Choices[0].Message.Content, nil
}

func roleOf(r domain.ChatRole) string {
	switch r {
	case domain.ChatRoleSystem:
		return openai.ChatMessageRoleSystem
	case domain.ChatRoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
