//go:build !nostream

package nimclient

import (
	"github.com/deepfish-labs/nimclient/chat"
	"github.com/deepfish-labs/nimclient/chat/openai"
	"github.com/deepfish-labs/nimclient/config"
	"github.com/deepfish-labs/nimclient/logging"
)

// streamingAvailable reports whether the SDK transport is compiled in.
const streamingAvailable = true

func newStreamingClient(cfg config.Config, logger logging.Logger) chat.Client {
	return openai.New(cfg, func(o *openai.Options) {
		if logger != nil {
			o.Logger = logger
		}
	})
}
