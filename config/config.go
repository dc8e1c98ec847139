package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// EnvAPIKey is the environment variable the credential is resolved from.
const EnvAPIKey = "NVIDIA_API_KEY"

// Fixed endpoint and retry defaults for the NIM API.
const (
	DefaultBaseURL    = "https://integrate.api.nvidia.com/v1"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
)

// Model tiers from the NIM catalog, by role.
const (
	DefaultModel   = "meta/llama-3.1-70b-instruct"
	ReasoningModel = "nvidia/nemotron-3-nano-30b-a3b"
	FastModel      = "microsoft/phi-3-mini-4k-instruct"
	PowerfulModel  = "meta/llama-3.1-405b-instruct"
)

// ErrMissingAPIKey signals that no credential could be resolved. No client
// may be constructed without one.
var ErrMissingAPIKey = errors.New("NVIDIA_API_KEY is required; set it in the environment or a .env file")

// Config carries the immutable connection parameters shared by both
// transports. It is created once at client construction and never mutated.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int

	// Model tiers, by role.
	DefaultModel   string
	ReasoningModel string
	FastModel      string
	PowerfulModel  string
}

// Default returns a Config populated with the fixed defaults and the given
// credential.
func Default(apiKey string) Config {
	return Config{
		APIKey:         apiKey,
		BaseURL:        DefaultBaseURL,
		Timeout:        DefaultTimeout,
		MaxRetries:     DefaultMaxRetries,
		DefaultModel:   DefaultModel,
		ReasoningModel: ReasoningModel,
		FastModel:      FastModel,
		PowerfulModel:  PowerfulModel,
	}
}

// Load resolves a Config from the process environment. When the credential
// is unset it falls back to loading a local .env file once and re-reads the
// environment; godotenv mutates the process environment as a side effect.
func Load() (Config, error) {
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		// A missing .env file is not an error on its own.
		_ = godotenv.Load()
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return Config{}, fmt.Errorf("resolve config: %w", ErrMissingAPIKey)
	}
	return Default(apiKey), nil
}
