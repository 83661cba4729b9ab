package services

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"
	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/httpx"
)

// NewOpenAIClient builds an OpenAI client backed by the shared pooled HTTP
// client, so all three remote services reuse connections.
func NewOpenAIClient(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = httpx.OpenAIClient
	return openai.NewClientWithConfig(cfg)
}

// classifyRemoteError maps an OpenAI SDK error onto the pipeline's error
// taxonomy, tagging auth and rate-limit failures.
func classifyRemoteError(service string, err error) error {
	kind := errs.RemoteGeneric

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			kind = errs.RemoteAuth
		case http.StatusTooManyRequests:
			kind = errs.RemoteRateLimited
		}
	}

	return &errs.RemoteServiceError{Service: service, Kind: kind, Err: err}
}

// isRetryableRemoteError reports whether a failed API call is worth retrying
// within the same stage (rate limits and server-side errors).
func isRetryableRemoteError(err error) bool {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		// Network-level failures have no status code; retry them.
		var remoteErr *errs.RemoteServiceError
		return !errors.As(err, &remoteErr)
	}

	switch apiErr.HTTPStatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
