package remote

import "errors"

// Sentinel kinds for remote snapshot errors.
var (
	ErrNoBaseURL = errors.New("remote base url not configured")
	ErrBadStatus = errors.New("unexpected remote status")
)
