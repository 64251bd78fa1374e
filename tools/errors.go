package tools

import "errors"

var (
	// ErrFetchFailure marks an unreachable or misbehaving calendar or image
	// provider.
	ErrFetchFailure = errors.New("fetch failed")
	// ErrUploadFailure marks a failed step of the VK photo upload.
	ErrUploadFailure = errors.New("upload failed")
	// ErrSendFailure marks a rejected messages.send call.
	ErrSendFailure = errors.New("send failed")
)
