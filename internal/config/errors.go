package config

import "errors"

// ErrInvalidConfig wraps every validation failure of the merged
// [StructuredConfig]. Callers can match it with [errors.Is].
var ErrInvalidConfig = errors.New("invalid configuration")
