package rules

import "errors"

// Sentinel errors.
var (
	// ErrUnknownTextMatchMode is returned when a text match carries a mode
	// this version does not recognize. It indicates schema/version skew and
	// fails the operation rather than silently matching nothing.
	ErrUnknownTextMatchMode = errors.New("unknown text match mode")

	// ErrUnknownTriggerMode is the trigger-combination equivalent of
	// ErrUnknownTextMatchMode.
	ErrUnknownTriggerMode = errors.New("unknown trigger match mode")
)
