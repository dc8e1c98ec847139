// Package nimclient selects and constructs a chat client for the NVIDIA NIM
// hosted inference API. Most applications interact with this package by:
//  1. Exporting NVIDIA_API_KEY (or placing it in a local .env file)
//  2. Calling Create() to obtain the best available transport
//  3. Issuing chat calls through the chat.Client / chat.StreamingClient
//     interfaces
//
// Exactly two transports exist: the SDK-backed streaming client
// (chat/openai) and the plain HTTPS fallback (chat/rest). Selection is
// capability-driven and never probes the network; the streaming transport
// can be excluded at build time with the nostream tag, which is the Go
// analog of the optional-dependency guard this library grew out of.
package nimclient

import (
	"errors"

	"github.com/deepfish-labs/nimclient/chat"
	"github.com/deepfish-labs/nimclient/chat/rest"
	"github.com/deepfish-labs/nimclient/config"
	"github.com/deepfish-labs/nimclient/logging"
)

// ErrNoTransport signals that no chat transport is compiled into the
// binary. Construction fails entirely; no partially-usable client is
// returned.
var ErrNoTransport = errors.New("nimclient: no chat transport available")

// Options configure client construction.
type Options struct {
	// Config, when non-nil, skips environment resolution.
	Config *config.Config

	// Logger is handed to the constructed transport. Defaults to slog.
	Logger logging.Logger
}

// capabilities describes which transports the build carries.
type capabilities struct {
	streaming bool
	fallback  bool
}

func defaultCapabilities() capabilities {
	return capabilities{streaming: streamingAvailable, fallback: true}
}

// Create returns the best available client. With preferStreaming the
// SDK-backed streaming transport is chosen when compiled in; otherwise the
// plain HTTPS fallback is used. The returned client can be asserted to
// chat.StreamingClient when incremental delivery is needed.
func Create(preferStreaming bool, optFns ...func(o *Options)) (chat.Client, error) {
	return create(defaultCapabilities(), preferStreaming, optFns...)
}

func create(caps capabilities, preferStreaming bool, optFns ...func(o *Options)) (chat.Client, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	var cfg config.Config
	if opts.Config != nil {
		cfg = *opts.Config
	} else {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	switch {
	case preferStreaming && caps.streaming:
		return newStreamingClient(cfg, opts.Logger), nil
	case caps.fallback:
		return rest.New(cfg, func(o *rest.Options) {
			if opts.Logger != nil {
				o.Logger = opts.Logger
			}
		}), nil
	default:
		return nil, ErrNoTransport
	}
}
