package calendar

import "errors"

// Sentinel kinds for calendar loading errors.
var (
	ErrNoPath      = errors.New("calendar path not configured")
	ErrBadCalendar = errors.New("malformed calendar")
)
