// Package rest implements the fallback NIM transport: a bearer-authenticated
// JSON POST to the chat-completions endpoint, without streaming. It keeps
// the library usable when the SDK transport is excluded from the build.
//
// The pooled HTTP session is created lazily on the first call and reused for
// the client's lifetime. Every logical call runs under the retry policy, so
// transient statuses are retried beneath it.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/deepfish-labs/nimclient/chat"
	"github.com/deepfish-labs/nimclient/config"
	"github.com/deepfish-labs/nimclient/logging"
	"github.com/deepfish-labs/nimclient/retry"
)

// Options configure the fallback client.
type Options struct {
	// Logger receives one line per outbound call. Defaults to slog.
	Logger logging.Logger

	// HTTPClient overrides the lazily-built pooled session, mainly for tests.
	HTTPClient *http.Client

	// OnRetry observes every scheduled retry.
	OnRetry func(attempt int, err error)
}

// Client is the non-streaming transport.
type Client struct {
	cfg    config.Config
	logger logging.Logger
	policy retry.Policy

	sessionOnce sync.Once
	session     *http.Client
	override    *http.Client
}

var _ chat.Client = (*Client)(nil)

// New creates a fallback client from cfg. No connection pool is set up
// until the first call.
func New(cfg config.Config, optFns ...func(o *Options)) *Client {
	opts := Options{Logger: logging.NewDefaultSlogLogger()}
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Client{cfg: cfg, logger: opts.Logger, override: opts.HTTPClient}
	c.policy = retry.New(cfg.MaxRetries, func(p *retry.Policy) {
		p.Classify = transient
		p.OnRetry = opts.OnRetry
	})
	return c
}

// Chat sends one user message and returns the completed response text.
func (c *Client) Chat(ctx context.Context, message string, optFns ...func(o *chat.Options)) (string, error) {
	req := chat.NewRequest(c.cfg, message, chat.ApplyOptions(optFns...))
	c.logger.Info("calling NIM model",
		"model", req.Model,
		"request_id", uuid.NewString(),
		"transport", "rest",
	)

	var text string
	err := c.policy.Do(ctx, func() error {
		var exchErr error
		text, exchErr = c.exchange(ctx, req)
		return exchErr
	})
	if err != nil {
		return "", err
	}
	return text, nil
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

// ensureSession initializes the pooled HTTP session exactly once.
func (c *Client) ensureSession() *http.Client {
	c.sessionOnce.Do(func() {
		if c.override != nil {
			c.session = c.override
			return
		}
		c.session = &http.Client{Timeout: c.cfg.Timeout}
	})
	return c.session
}

// completionRequest is the chat-completions wire payload.
type completionRequest struct {
	Model       string         `json:"model"`
	Messages    []chat.Message `json:"messages"`
	MaxTokens   int64          `json:"max_tokens"`
	Temperature float64        `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// exchange performs one request/response round trip.
func (c *Client) exchange(ctx context.Context, req chat.Request) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.ensureSession().Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("nim chat: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &chat.HTTPStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", &chat.MalformedResponseError{Field: "choices"}
	}
	if parsed.Choices[0].Message.Content == nil {
		return "", &chat.MalformedResponseError{Field: "choices[0].message.content"}
	}
	return *parsed.Choices[0].Message.Content, nil
}

// transient reports whether an error should be retried: an allow-listed
// status code or a network timeout.
func transient(err error) bool {
	var statusErr *chat.HTTPStatusError
	if errors.As(err, &statusErr) {
		return retry.TransientStatus(statusErr.StatusCode)
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
