package services

import "errors"

// Pipeline failure taxonomy. Handlers map these onto response shapes; nothing
// else escapes the pipeline boundary.
var (
	// ErrUnsupportedMediaType means the upload is not a PDF by declared
	// media type or by extension.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrUnreadableDocument means the file was accepted but no text layer
	// could be extracted (e.g. a scanned image PDF). Not retryable.
	ErrUnreadableDocument = errors.New("pdf text layer not accessible")

	// ErrGenerationFailed means the completion backend failed after
	// retries. The whole request may be retried by the caller.
	ErrGenerationFailed = errors.New("generation failed")
)
