// Package logging provides a minimal logging interface and adapters for the
// NIM clients.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) the transports use to record outbound calls. This package
// includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", nil)
//	client, err := nimclient.Create(true, func(o *nimclient.Options) {
//		o.Logger = logger
//	})
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
