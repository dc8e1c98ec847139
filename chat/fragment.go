package chat

// FragmentKind distinguishes chain-of-thought output from answer text.
type FragmentKind string

// Fragment kinds.
const (
	FragmentReasoning FragmentKind = "reasoning"
	FragmentContent   FragmentKind = "content"
)

// ThinkingMarker prefixes rendered reasoning fragments so consumers can
// separate the chain of thought from the final answer.
const ThinkingMarker = "[THINKING] "

// Fragment is one unit of partial output emitted during a streaming
// exchange, in upstream order.
type Fragment struct {
	Kind FragmentKind
	Text string
}

// Reasoning returns a chain-of-thought fragment.
func Reasoning(text string) Fragment {
	return Fragment{Kind: FragmentReasoning, Text: text}
}

// Content returns an answer-text fragment.
func Content(text string) Fragment {
	return Fragment{Kind: FragmentContent, Text: text}
}

// String renders the fragment, marking reasoning fragments with
// ThinkingMarker.
func (f Fragment) String() string {
	if f.Kind == FragmentReasoning {
		return ThinkingMarker + f.Text
	}
	return f.Text
}
