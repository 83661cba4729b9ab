// Package httpx provides HTTP client utilities with connection pooling and retry logic.
package httpx

import (
	"net/http"
	"time"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/config"
)

// ClientConfig configures the HTTP client behavior.
type ClientConfig struct {
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// DefaultClientConfig returns the default HTTP client configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:             config.HTTPTimeout,
		MaxIdleConns:        config.HTTPMaxIdleConns,
		MaxIdleConnsPerHost: config.HTTPMaxIdleConnsPerHost,
		IdleConnTimeout:     config.HTTPIdleConnTimeout,
	}
}

// NewPooledClient creates an HTTP client with connection pooling.
// Reuse it across requests to the same host.
func NewPooledClient(cfg ClientConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.MaxIdleConns,
			MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:     cfg.IdleConnTimeout,
		},
	}
}

// OpenAIClient is the shared HTTP client for OpenAI API calls. Transcription
// uploads can be large, so it carries a longer timeout than the default.
var OpenAIClient = NewPooledClient(ClientConfig{
	Timeout:             10 * time.Minute,
	MaxIdleConns:        config.HTTPMaxIdleConns,
	MaxIdleConnsPerHost: config.HTTPMaxIdleConnsPerHost,
	IdleConnTimeout:     config.HTTPIdleConnTimeout,
})
