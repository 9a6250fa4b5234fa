package contract

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnknownState = errors.New("unknown dialogue state")
)
