package openai

import (
	"encoding/json"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"

	"github.com/deepfish-labs/nimclient/chat"
)

// stream adapts the SDK's SSE chunk stream to the chat.Stream contract.
// Iteration is pull-based: each Next call advances the underlying SSE
// decoder, so a slow consumer applies backpressure directly to the socket.
type stream struct {
	raw      *ssestream.Stream[openai.ChatCompletionChunk]
	thinking bool

	cur     chat.Fragment
	pending *chat.Fragment // carried-over second fragment of the last chunk
}

func newStream(raw *ssestream.Stream[openai.ChatCompletionChunk], thinking bool) *stream {
	return &stream{raw: raw, thinking: thinking}
}

// Next advances to the next fragment. A single upstream chunk may carry
// both a reasoning delta and a content delta; the reasoning fragment is
// emitted first and the content fragment on the following pull.
func (s *stream) Next() bool {
	if s.pending != nil {
		s.cur = *s.pending
		s.pending = nil
		return true
	}
	for s.raw.Next() {
		frags := decodeChunk(s.raw.Current(), s.thinking)
		if len(frags) == 0 {
			continue
		}
		s.cur = frags[0]
		if len(frags) > 1 {
			carry := frags[1]
			s.pending = &carry
		}
		return true
	}
	return false
}

// Current returns the fragment produced by the last successful Next.
func (s *stream) Current() chat.Fragment { return s.cur }

// Err reports the terminal stream error, if any, once Next returns false.
func (s *stream) Err() error { return s.raw.Err() }

// Close releases the underlying connection.
func (s *stream) Close() error { return s.raw.Close() }

// decodeChunk turns one upstream chunk into zero, one or two fragments: the
// reasoning delta (thinking mode only) followed by the content delta.
func decodeChunk(chunk openai.ChatCompletionChunk, thinking bool) []chat.Fragment {
	if len(chunk.Choices) == 0 {
		return nil
	}
	delta := chunk.Choices[0].Delta

	var frags []chat.Fragment
	if thinking {
		if r := reasoningDelta(delta); r != "" {
			frags = append(frags, chat.Reasoning(r))
		}
	}
	if delta.Content != "" {
		frags = append(frags, chat.Content(delta.Content))
	}
	return frags
}

// reasoningDelta extracts the reasoning_content extension field, which the
// SDK surfaces only through the raw JSON metadata of the delta.
func reasoningDelta(delta openai.ChatCompletionChunkChoiceDelta) string {
	field, ok := delta.JSON.ExtraFields["reasoning_content"]
	if !ok || !field.Valid() {
		return ""
	}
	var text string
	if err := json.Unmarshal([]byte(field.Raw()), &text); err != nil {
		return ""
	}
	return text
}
