// Package chat defines the transport-agnostic vocabulary for the NIM chat
// clients: request construction, streaming fragments, the client interfaces
// and the shared error types.
//
// Core goals:
//   - Keep request shapes fully typed; optional pieces are present/absent
//     fields, never payload patched in at send time
//   - Unify streaming + non-streaming access behind small interfaces so the
//     factory can hand back either transport
//   - Separate the chain-of-thought channel from answer text (Fragment)
//
// Concrete transports live in the subpackages:
//   - chat/openai: SDK-backed client with streaming and thinking mode
//   - chat/rest: plain HTTPS fallback without streaming
package chat
