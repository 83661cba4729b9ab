// Package errs defines the error taxonomy shared by all pipeline stages.
package errs

import "fmt"

// InvalidParameterError reports caller-supplied input that fails validation
// before any external tool or service is invoked.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// MediaReadError reports a failure to read or probe a media file, including
// subprocess failures while doing so.
type MediaReadError struct {
	Path string
	Err  error
}

func (e *MediaReadError) Error() string {
	return fmt.Sprintf("failed to read media %s: %v", e.Path, e.Err)
}

func (e *MediaReadError) Unwrap() error { return e.Err }

// MediaWriteError reports a failure to produce an output media file.
type MediaWriteError struct {
	Path string
	Err  error
}

func (e *MediaWriteError) Error() string {
	return fmt.Sprintf("failed to write media %s: %v", e.Path, e.Err)
}

func (e *MediaWriteError) Unwrap() error { return e.Err }

// RemoteKind classifies remote service failures.
type RemoteKind string

const (
	RemoteGeneric     RemoteKind = "error"
	RemoteAuth        RemoteKind = "auth"
	RemoteRateLimited RemoteKind = "rate-limited"
)

// RemoteServiceError reports a failure from a remote API collaborator
// (speech-to-text, translation, speech synthesis).
type RemoteServiceError struct {
	Service string
	Kind    RemoteKind
	Err     error
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%s service failed (%s): %v", e.Service, e.Kind, e.Err)
}

func (e *RemoteServiceError) Unwrap() error { return e.Err }

// DownloadError reports a failure to acquire a remote video.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }
