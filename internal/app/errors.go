package service

import "errors"

// Sentinel kinds for service-level failures.
var (
	ErrUnknownEvent       = errors.New("unknown event")
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrUnknownGame        = errors.New("unknown game")
	ErrAuthorWindowClosed = errors.New("author window closed")
)
