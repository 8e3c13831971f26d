package media

import "errors"

var (
	// ErrUploadFailed is returned when the media host rejects the file or
	// the transfer does not complete. The caller surfaces this as a failed
	// registration; no retry is attempted.
	ErrUploadFailed = errors.New("media upload failed")

	// ErrUnknownBackend is returned by NewUploader when the configured
	// backend selector matches no implementation.
	ErrUnknownBackend = errors.New("unknown media backend")
)
