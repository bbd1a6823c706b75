package siteconfig

import "errors"

var (
	ErrReadFailed    = errors.New("siteconfig: failed to read file")
	ErrInvalidConfig = errors.New("siteconfig: invalid configuration")
)
