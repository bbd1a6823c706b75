package models

import "errors"

var (
	ErrDuplicateID   = errors.New("models: duplicate id")
	ErrUnknownParent = errors.New("models: unknown parent")
	ErrNoTimestamp   = errors.New("models: last updated is not set")
	ErrBadTimestamp  = errors.New("models: last updated is not a valid date")
)
