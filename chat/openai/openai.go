// Package openai implements the streaming-capable NIM transport on the
// official OpenAI SDK. NIM exposes an OpenAI-compatible chat-completions
// surface, so the SDK client is pointed at the NIM endpoint and extended
// with the thinking side channel via the chat_template_kwargs request
// extension. It adapts the typed chat.Request into SDK parameters and the
// SDK's SSE chunk stream back into chat.Fragment values.
package openai

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/deepfish-labs/nimclient/chat"
	"github.com/deepfish-labs/nimclient/config"
	"github.com/deepfish-labs/nimclient/logging"
)

// Options configure the SDK-backed client.
type Options struct {
	// Logger receives one line per outbound call. Defaults to slog.
	Logger logging.Logger

	// ClientOptions are appended to the SDK client construction, mainly for
	// tests (custom HTTP client, middleware).
	ClientOptions []option.RequestOption
}

// Client is the streaming-capable transport. The SDK handle is constructed
// eagerly and reused for the client's lifetime. Low-level retries on
// transient failures are handled by the SDK's own classification, bounded
// by the configured retry budget.
type Client struct {
	cfg    config.Config
	client *openai.Client
	logger logging.Logger
}

var _ chat.StreamingClient = (*Client)(nil)

// New creates a client for the endpoint and credential carried by cfg.
func New(cfg config.Config, optFns ...func(o *Options)) *Client {
	opts := Options{Logger: logging.NewDefaultSlogLogger()}
	for _, fn := range optFns {
		fn(&opts)
	}

	clientOpts := append([]option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}, opts.ClientOptions...)

	client := openai.NewClient(clientOpts...)

	return &Client{cfg: cfg, client: &client, logger: opts.Logger}
}

// Chat sends one user message and blocks for the full completion. Thinking
// mode reroutes the call to the reasoning tier and attaches the
// enable_thinking extension; for a visible chain of thought use
// ChatWithThinking instead.
func (c *Client) Chat(ctx context.Context, message string, optFns ...func(o *chat.Options)) (string, error) {
	req := chat.NewRequest(c.cfg, message, chat.ApplyOptions(optFns...))
	c.logCall(req)

	resp, err := c.client.Chat.Completions.New(ctx, buildParams(req), c.callOptions(req)...)
	if err != nil {
		return "", fmt.Errorf("nim chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", &chat.MalformedResponseError{Field: "choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatStream sends one user message and returns the response as a lazy,
// single-pass fragment stream. No mid-stream retry occurs: once fragments
// are flowing, any failure surfaces through Stream.Err.
func (c *Client) ChatStream(ctx context.Context, message string, optFns ...func(o *chat.Options)) (chat.Stream, error) {
	req := chat.NewRequest(c.cfg, message, chat.ApplyOptions(optFns...))
	req.Stream = true
	c.logCall(req)

	raw := c.client.Chat.Completions.NewStreaming(ctx, buildParams(req), c.callOptions(req)...)
	if err := raw.Err(); err != nil {
		return nil, fmt.Errorf("nim chat stream: %w", err)
	}
	return newStream(raw, req.Thinking), nil
}

// ChatWithThinking is ChatStream pinned to thinking mode, interleaving
// reasoning fragments with answer text.
func (c *Client) ChatWithThinking(ctx context.Context, message string, optFns ...func(o *chat.Options)) (chat.Stream, error) {
	withThinking := append(append([]func(o *chat.Options){}, optFns...), func(o *chat.Options) {
		o.Thinking = true
	})
	return c.ChatStream(ctx, message, withThinking...)
}

// QuickChat answers with the fast-tier model and a small token budget.
func (c *Client) QuickChat(ctx context.Context, message string) (string, error) {
	return c.Chat(ctx, message, func(o *chat.Options) {
		o.Model = c.cfg.FastModel
		o.MaxTokens = chat.QuickMaxTokens
	})
}

// DeepChat answers with the powerful-tier model and a large token budget.
func (c *Client) DeepChat(ctx context.Context, message string) (string, error) {
	return c.Chat(ctx, message, func(o *chat.Options) {
		o.Model = c.cfg.PowerfulModel
		o.MaxTokens = chat.DeepMaxTokens
	})
}

func (c *Client) logCall(req chat.Request) {
	c.logger.Info("calling NIM model",
		"model", req.Model,
		"request_id", uuid.NewString(),
		"stream", req.Stream,
		"thinking", req.Thinking,
	)
}

// callOptions returns the per-request SDK options. The request timeout only
// bounds blocking exchanges; a stream may legitimately outlive it.
func (c *Client) callOptions(req chat.Request) []option.RequestOption {
	var reqOpts []option.RequestOption
	if !req.Stream {
		reqOpts = append(reqOpts, option.WithRequestTimeout(c.cfg.Timeout))
	}
	if req.Thinking {
		reqOpts = append(reqOpts, option.WithJSONSet("chat_template_kwargs.enable_thinking", true))
	}
	return reqOpts
}

// buildParams maps the typed request onto SDK parameters.
func buildParams(req chat.Request) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case chat.RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	return openai.ChatCompletionNewParams{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   openai.Int(req.MaxTokens),
		Temperature: openai.Float(req.Temperature),
	}
}
