package chat

import "context"

// Token budgets and sampling defaults shared by both transports.
const (
	DefaultMaxTokens   = 4096
	QuickMaxTokens     = 1024
	DeepMaxTokens      = 16384
	DefaultTemperature = 0.7
)

// Options shape a single chat call.
type Options struct {
	// Model overrides the configured default tier. Ignored when Thinking is
	// set: thinking mode is tied to the reasoning tier.
	Model string

	// SystemPrompt, when non-empty, is sent as a leading system message.
	SystemPrompt string

	// MaxTokens bounds the completion length.
	MaxTokens int64

	// Temperature is passed through unvalidated (0.0-1.0 by convention).
	Temperature float64

	// Thinking requests a separate chain-of-thought channel and pins the
	// call to the reasoning tier.
	Thinking bool
}

// DefaultOptions returns the per-call defaults shared by both transports.
func DefaultOptions() Options {
	return Options{MaxTokens: DefaultMaxTokens, Temperature: DefaultTemperature}
}

// ApplyOptions folds functional overrides over the defaults.
func ApplyOptions(optFns ...func(o *Options)) Options {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Client is the minimal interface either transport satisfies. A client
// assumes at most one in-flight call per instance; it holds no locks of its
// own beyond the lazily-built transport handle.
type Client interface {
	// Chat sends one user message and returns the completed response text.
	Chat(ctx context.Context, message string, optFns ...func(o *Options)) (string, error)

	// QuickChat answers with the fast-tier model and a small token budget.
	QuickChat(ctx context.Context, message string) (string, error)

	// DeepChat answers with the powerful-tier model and a large token budget.
	DeepChat(ctx context.Context, message string) (string, error)
}

// StreamingClient is implemented by transports that can deliver the response
// incrementally.
type StreamingClient interface {
	Client

	// ChatStream sends one user message and returns the response as a lazy
	// fragment stream.
	ChatStream(ctx context.Context, message string, optFns ...func(o *Options)) (Stream, error)

	// ChatWithThinking is ChatStream with thinking mode enabled, exposing
	// the model's chain of thought as reasoning fragments.
	ChatWithThinking(ctx context.Context, message string, optFns ...func(o *Options)) (Stream, error)
}

// Stream is a single-pass, pull-based fragment sequence. Each Next call may
// block until the next upstream event arrives; the caller drives iteration.
// Iteration ends when Next returns false, after which Err reports any
// terminal stream error. A Stream is not restartable.
type Stream interface {
	Next() bool
	Current() Fragment
	Err() error
	Close() error
}
