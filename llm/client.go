// Package llm dispatches answer generation to one of several interchangeable
// chat-completion services. Groq and Ollama speak the OpenAI wire protocol,
// so a single openai-go client covers all providers; only the endpoint,
// credentials and model differ.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
	ProviderOllama Provider = "ollama"
)

const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	ollamaBaseURL = "http://localhost:11434/v1"

	defaultTimeout     = 60 * time.Second
	defaultTemperature = 0.7
	defaultMaxTokens   = 500
)

// Config carries per-provider connection settings. Temperature is a pointer
// so an explicit 0 survives; nil means use the default.
type Config struct {
	Provider    Provider
	Model       string
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	Temperature *float64
	MaxTokens   int64
}

type Client struct {
	api         openai.Client
	provider    Provider
	model       string
	timeout     time.Duration
	temperature float64
	maxTokens   int64
}

// NewClient validates the provider configuration and builds the completion
// client. Misconfiguration here is fatal to the process; per-call failures
// are handled by the caller.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	model := cfg.Model

	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("openai provider requires an api key")
		}
		if model == "" {
			model = "gpt-3.5-turbo"
		}
	case ProviderGroq:
		if cfg.APIKey == "" {
			return nil, errors.New("groq provider requires an api key")
		}
		if baseURL == "" {
			baseURL = groqBaseURL
		}
		if model == "" {
			model = "llama-3.1-70b-versatile"
		}
	case ProviderOllama:
		if baseURL == "" {
			baseURL = ollamaBaseURL
		}
		if model == "" {
			model = "llama2"
		}
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	c := &Client{
		api:         openai.NewClient(opts...),
		provider:    cfg.Provider,
		model:       model,
		timeout:     cfg.Timeout,
		temperature: defaultTemperature,
		maxTokens:   cfg.MaxTokens,
	}
	if cfg.Temperature != nil {
		c.temperature = *cfg.Temperature
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.maxTokens <= 0 {
		c.maxTokens = defaultMaxTokens
	}

	return c, nil
}

func (c *Client) Provider() Provider {
	return c.provider
}

// Complete sends one system+user exchange and returns the model's reply.
// The call is bounded by the configured timeout; a timeout surfaces as an
// ordinary error.
func (c *Client) Complete(ctx context.Context, system string, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("completion request to %s failed: %w", c.provider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion from %s returned no choices", c.provider)
	}

	return resp.Choices[0].Message.Content, nil
}
