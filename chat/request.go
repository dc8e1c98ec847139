package chat

import "github.com/deepfish-labs/nimclient/config"

// Role tags a message author.
type Role string

// Roles used by this client. The API also knows "assistant" and "tool", but
// a single-exchange client never sends them.
const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one role-tagged entry of the outbound conversation. The JSON
// tags match the chat-completions wire format.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is the fully-built input of a single chat exchange. It is created
// per call and discarded after the response is consumed.
type Request struct {
	Model       string
	Messages    []Message
	MaxTokens   int64
	Temperature float64
	Stream      bool
	Thinking    bool
}

// NewRequest builds a Request from one user message and the call options:
// an optional system message followed by exactly one user message.
//
// Model resolution: thinking mode always routes to the reasoning tier, even
// over an explicitly requested model, because thinking is only supported
// there. Otherwise an explicit model wins over the configured default.
func NewRequest(cfg config.Config, message string, opts Options) Request {
	model := opts.Model
	if model == "" {
		model = cfg.DefaultModel
	}
	if opts.Thinking {
		model = cfg.ReasoningModel
	}

	messages := make([]Message, 0, 2)
	if opts.SystemPrompt != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: opts.SystemPrompt})
	}
	messages = append(messages, Message{Role: RoleUser, Content: message})

	return Request{
		Model:       model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Thinking:    opts.Thinking,
	}
}
