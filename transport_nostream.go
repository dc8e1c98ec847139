//go:build nostream

package nimclient

import (
	"github.com/deepfish-labs/nimclient/chat"
	"github.com/deepfish-labs/nimclient/config"
	"github.com/deepfish-labs/nimclient/logging"
)

// streamingAvailable reports whether the SDK transport is compiled in.
const streamingAvailable = false

// newStreamingClient is never selected when the SDK transport is excluded.
func newStreamingClient(config.Config, logging.Logger) chat.Client { return nil }
