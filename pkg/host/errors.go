package host

import "errors"

var (
	// ErrNotFound is returned by Storage.Get when no value is stored under the key.
	ErrNotFound = errors.New("host: preference not found")

	// ErrIncompleteEnv is returned when an Env is missing one of its parts.
	ErrIncompleteEnv = errors.New("host: environment is incomplete")
)
