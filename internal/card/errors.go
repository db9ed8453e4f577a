package card

import "errors"

// Error kinds. Every stage wraps one of these so callers can classify
// failures with errors.Is.
var (
	ErrNetwork = errors.New("network error")
	ErrParse   = errors.New("parse error")
	ErrSchema  = errors.New("schema error")
	ErrIO      = errors.New("io error")
)
