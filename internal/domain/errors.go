package domain

import "errors"

var (
	ErrMissingUserID    = errors.New("user id is required")
	ErrInvalidKind      = errors.New("invalid activity kind")
	ErrInvalidDate      = errors.New("invalid calendar date")
	ErrInvalidRange     = errors.New("end date is before start date")
	ErrInvalidRecord    = errors.New("invalid activity record")
	ErrStoreUnavailable = errors.New("activity store unavailable")
	ErrDuplicateRecord  = errors.New("duplicate activity record for date")
)
