package service

import "errors"

var (
	// ErrNothingToCopy is returned when the prior day has no entries to
	// copy. It is reported to the caller, not treated as a server fault.
	ErrNothingToCopy = errors.New("no entries to copy from yesterday")

	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)
