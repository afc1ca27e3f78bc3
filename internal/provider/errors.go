package provider

import "errors"

var (
	// ErrIntegrationMissing means the integration artifact does not exist at
	// the configured path. Detected before any child process is spawned.
	ErrIntegrationMissing = errors.New("reasoning integration not found")

	// ErrChildProcessFailed means the integration exited non-zero. The
	// message carries the exit code and captured stderr.
	ErrChildProcessFailed = errors.New("reasoning integration failed")

	// ErrMarkerNotFound means the integration's output did not contain both
	// result markers.
	ErrMarkerNotFound = errors.New("result markers not found in output")

	// ErrPayloadInvalid means the marker-framed payload did not decode to a
	// result with both required fields.
	ErrPayloadInvalid = errors.New("result payload invalid")
)
