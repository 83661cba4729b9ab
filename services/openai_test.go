package services

import (
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/CodingWithShahzaib/YT-Video-Translation-Openai/internal/errs"
)

func apiError(status int) error {
	return &openai.APIError{HTTPStatusCode: status, Message: "boom"}
}

func TestClassifyRemoteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.RemoteKind
	}{
		{"unauthorized", apiError(http.StatusUnauthorized), errs.RemoteAuth},
		{"forbidden", apiError(http.StatusForbidden), errs.RemoteAuth},
		{"rate limited", apiError(http.StatusTooManyRequests), errs.RemoteRateLimited},
		{"server error", apiError(http.StatusInternalServerError), errs.RemoteGeneric},
		{"network", errors.New("connection refused"), errs.RemoteGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyRemoteError("transcription", tt.err)

			var remoteErr *errs.RemoteServiceError
			if !errors.As(err, &remoteErr) {
				t.Fatalf("classifyRemoteError() = %T, want RemoteServiceError", err)
			}
			if remoteErr.Kind != tt.want {
				t.Errorf("Kind = %q, want %q", remoteErr.Kind, tt.want)
			}
			if remoteErr.Service != "transcription" {
				t.Errorf("Service = %q, want transcription", remoteErr.Service)
			}
			if !errors.Is(err, tt.err) {
				t.Error("classified error should wrap the cause")
			}
		})
	}
}

func TestIsRetryableRemoteError(t *testing.T) {
	retryable := []error{
		apiError(http.StatusTooManyRequests),
		apiError(http.StatusInternalServerError),
		apiError(http.StatusBadGateway),
		apiError(http.StatusServiceUnavailable),
		apiError(http.StatusGatewayTimeout),
		errors.New("connection reset"),
	}
	for _, err := range retryable {
		if !isRetryableRemoteError(err) {
			t.Errorf("isRetryableRemoteError(%v) = false, want true", err)
		}
	}

	permanent := []error{
		apiError(http.StatusUnauthorized),
		apiError(http.StatusBadRequest),
		apiError(http.StatusNotFound),
		&errs.RemoteServiceError{Service: "tts", Kind: errs.RemoteAuth, Err: errors.New("bad key")},
	}
	for _, err := range permanent {
		if isRetryableRemoteError(err) {
			t.Errorf("isRetryableRemoteError(%v) = true, want false", err)
		}
	}
}
